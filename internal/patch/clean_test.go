package patch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
)

const simpleDiff = "--- a/README.md\n+++ b/README.md\n@@ -1,1 +1,2 @@\n # Title\n+More text\n"

func TestClean_PlainDiffUnchanged(t *testing.T) {
	cleaned, err := Clean(simpleDiff)
	require.NoError(t, err)
	assert.Equal(t, simpleDiff, cleaned)
}

func TestClean_StripsFenceAndProse(t *testing.T) {
	raw := "Here is the patch you asked for:\n\n```diff\n" + simpleDiff + "```\nLet me know if you need anything else."

	cleaned, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, simpleDiff, cleaned)
}

func TestClean_NormalizesLineEndings(t *testing.T) {
	raw := "--- a/x.txt\r\n+++ b/x.txt\r\n@@ -1,1 +1,1 @@\r\n-old\r\n+new\r"

	cleaned, err := Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, "--- a/x.txt\n+++ b/x.txt\n@@ -1,1 +1,1 @@\n-old\n+new\n", cleaned)
}

func TestClean_NoDiffContent(t *testing.T) {
	_, err := Clean("I could not produce a patch for this task.")

	var structErr *domain.StructureError
	require.True(t, errors.As(err, &structErr))
	assert.Contains(t, structErr.Error(), "no diff content")
}
