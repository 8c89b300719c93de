package readability_test

import (
	"testing"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Configuration Reference</title></head>
<body>
<div id="sidebar">
	<a href="/docs/intro">Intro</a>
	<a href="/docs/config">Config</a>
</div>
<div id="content">
	<h1>Configuration Reference</h1>
	<p>Every option can be set in the configuration file, through an
	environment variable, or as a command line flag. Flags take the
	highest precedence, followed by environment variables, with the
	file providing defaults.</p>
	<p>The configuration file is looked up in the working directory
	first and then in the user configuration directory. A missing file
	is not an error; built-in defaults apply instead.</p>
	<p>Changes to the file are picked up on restart. There is no hot
	reload, so long-running processes must be restarted to apply new
	settings.</p>
</div>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()
		result, err := e.Extract(articlePage)
		require.NoError(t, err)
		assert.Equal(t, "Configuration Reference", result.Title)
		assert.Contains(t, result.ContentHTML, "highest precedence")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := e.Extract("")
		require.Error(t, err)
		assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
	})
}
