package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanic-service/internal/training"
)

// setupDataDir writes a small passenger file and points the environment at it.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked\n")
	for i := 1; i <= 40; i++ {
		sex, survived, age, class := "male", 0, 60, 3
		if i%2 == 0 {
			sex, survived, age, class = "female", 1, 5, 1
		}
		fmt.Fprintf(&b, "%d,%d,%d,\"Passenger %d\",%s,%d,0,0,T%d,8.05,,S\n", i, survived, class, i, sex, age, i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.csv"), []byte(b.String()), 0o644))

	t.Setenv("DATA_PATH", dir)
	t.Setenv("DATA_FILE", "train.csv")
	t.Setenv("DATABASE", "titanic")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("TEST_SIZE", "0.1")
	t.Setenv("SPLIT_SEED", "42")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	dir := setupDataDir(t)

	out, err := execute(t, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "passenger table holds 40 rows")
	assert.FileExists(t, filepath.Join(dir, "titanic"))

	out, err = execute(t, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "passenger table holds 40 rows", "a second import does not duplicate rows")
}

func TestTrainCommand_SingleModel(t *testing.T) {
	setupDataDir(t)

	out, err := execute(t, "train", "--model", "log_reg")
	require.NoError(t, err)

	var got map[training.ModelKind]training.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Contains(t, got, training.LogReg)
	assert.Equal(t, training.Metrics{Precision: 1, Recall: 1, F1: 1}, got[training.LogReg])
}

func TestTrainCommand_All(t *testing.T) {
	setupDataDir(t)

	out, err := execute(t, "train", "--all")
	require.NoError(t, err)

	var got map[training.ModelKind]training.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, len(training.Kinds))
	for _, kind := range training.Kinds {
		assert.Contains(t, got, kind)
	}
}

func TestTrainCommand_InvalidModel(t *testing.T) {
	setupDataDir(t)

	_, err := execute(t, "train", "--model", "unknown_model")
	assert.ErrorIs(t, err, training.ErrInvalidModelKind)
}

func TestTrainCommand_FlagValidation(t *testing.T) {
	setupDataDir(t)

	_, err := execute(t, "train")
	assert.Error(t, err, "one of --model or --all is required")

	_, err = execute(t, "train", "--model", "knn", "--all")
	assert.Error(t, err)
}

func TestCommand_InvalidConfig(t *testing.T) {
	setupDataDir(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := execute(t, "import")
	assert.Error(t, err)
}
