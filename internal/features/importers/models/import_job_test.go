package importers_models

import (
	"testing"

	importers_enums "importhub/internal/features/importers/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func Test_GetData_WithMixedImportModes_DecodesEveryEntry(t *testing.T) {
	job := &ImportJob{
		Data: datatypes.JSON(`{
			"users": [
				{"email": "a@acme.dev", "import": "invite"},
				{"email": "b@acme.dev", "import": "map"},
				{"email": "c@acme.dev", "import": false},
				{"email": "d@acme.dev"}
			],
			"credentials": {"token": "secret"}
		}`),
	}

	data, err := job.GetData()
	require.NoError(t, err)

	require.Len(t, data.Users, 4)
	assert.Equal(t, importers_enums.ImportModeInvite, data.Users[0].Import)
	assert.Equal(t, importers_enums.ImportModeMap, data.Users[1].Import)
	assert.Equal(t, importers_enums.ImportModeNone, data.Users[2].Import)
	assert.Equal(t, importers_enums.ImportModeNone, data.Users[3].Import)
	assert.JSONEq(t, `{"token": "secret"}`, string(data.Credentials))
}

func Test_GetData_WithImportTrue_ReturnsError(t *testing.T) {
	job := &ImportJob{Data: datatypes.JSON(`{"users": [{"email": "a@acme.dev", "import": true}]}`)}

	_, err := job.GetData()

	assert.Error(t, err)
}

func Test_GetConfigAndMetadata_WithEmptyColumns_ReturnZeroValues(t *testing.T) {
	job := &ImportJob{}

	config, err := job.GetConfig()
	require.NoError(t, err)
	assert.False(t, config.Sync)

	metadata, err := job.GetMetadata()
	require.NoError(t, err)
	assert.Empty(t, metadata.Name)
}

func Test_GetMetadata_DecodesRepository(t *testing.T) {
	job := &ImportJob{
		Metadata: datatypes.JSON(`{"name":"api","url":"https://github.com/acme/api","owner":"acme","repository_id":1296269,"config":{"branch":"main"}}`),
	}

	metadata, err := job.GetMetadata()
	require.NoError(t, err)

	assert.Equal(t, "api", metadata.Name)
	assert.Equal(t, "acme", metadata.Owner)
	assert.Equal(t, int64(1296269), metadata.RepositoryID)
	assert.JSONEq(t, `{"branch":"main"}`, string(metadata.Config))
}
