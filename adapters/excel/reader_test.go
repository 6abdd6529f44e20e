package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairaudit/domain/fairness"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPool_CSV(t *testing.T) {
	path := writeTempCSV(t, `selected,skills,experience_years,education,match_score,attr:gender,attr:age_band
yes,Go; SQL,5.5,bachelor,0.72,female,30-44
no,python,2,master,0.35,male,18-29
1,rust;go,10,phd,,nonbinary,45+
`)

	pool, err := NewDataReader(path).ReadPool()
	require.NoError(t, err)

	require.Equal(t, 3, pool.RowCount)
	require.Len(t, pool.Candidates, 3)
	assert.Equal(t, []bool{true, false, true}, pool.Outcomes)

	first := pool.Candidates[0]
	assert.Equal(t, []string{"go", "sql"}, first.Skills)
	assert.Equal(t, 5.5, first.ExperienceYears)
	assert.Equal(t, fairness.EducationBachelor, first.Education)
	require.NotNil(t, first.MatchScore)
	assert.Equal(t, 0.72, *first.MatchScore)

	// Blank match score stays nil rather than defaulting to zero.
	assert.Nil(t, pool.Candidates[2].MatchScore)
	assert.Equal(t, fairness.EducationDoctorate, pool.Candidates[2].Education)

	require.Contains(t, pool.Attributes, "gender")
	require.Contains(t, pool.Attributes, "age_band")
	assert.Equal(t, []string{"female", "male", "nonbinary"}, pool.Attributes["gender"])
	assert.Equal(t, []string{"30-44", "18-29", "45+"}, pool.Attributes["age_band"])
}

func TestReadPool_MissingOutcomeColumn(t *testing.T) {
	path := writeTempCSV(t, `skills,attr:gender
go,female
`)

	_, err := NewDataReader(path).ReadPool()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selected")
}

func TestReadPool_NoAttributeColumns(t *testing.T) {
	path := writeTempCSV(t, `selected,skills
yes,go
`)

	_, err := NewDataReader(path).ReadPool()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attr:")
}

func TestReadPool_BadOutcomeValue(t *testing.T) {
	path := writeTempCSV(t, `selected,attr:gender
maybe,female
`)

	_, err := NewDataReader(path).ReadPool()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadPool_FileNotFound(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.csv")).ReadPool()
	require.Error(t, err)
}

func TestSplitSkills(t *testing.T) {
	assert.Nil(t, splitSkills(""))
	assert.Equal(t, []string{"go", "sql", "kubernetes"}, splitSkills("Go; SQL ;kubernetes;"))
}
