package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstChangelogSection(t *testing.T) {

	t.Run("ExtractsTheTopSectionBody", func(t *testing.T) {

		changelog := "# Changelog\n\n## [1.2.3] - 2026-08-01\n\n- Added plugin support\n- Improved recall\n\n## [1.2.2]\n\n- Fixed things\n"

		// act
		version, body, found := firstChangelogSection(changelog)

		assert.True(t, found)
		assert.Equal(t, "1.2.3", version)
		assert.Equal(t, "- Added plugin support\n- Improved recall", body)
	})

	t.Run("ReturnsNotFoundWhenThereAreNoVersionSections", func(t *testing.T) {

		// act
		_, _, found := firstChangelogSection("# Changelog\n\nNothing released yet.\n")

		assert.False(t, found)
	})

	t.Run("IgnoresHeadersWithoutABracketedVersion", func(t *testing.T) {

		changelog := "# Changelog\n\n## Unreleased\n\n## [0.1.0]\n\n- Initial release\n"

		// act
		version, body, found := firstChangelogSection(changelog)

		assert.True(t, found)
		assert.Equal(t, "0.1.0", version)
		assert.Equal(t, "- Initial release", body)
	})
}

func TestChangelogNotes(t *testing.T) {

	t.Run("FailsWhenTheTopSectionIsForAnotherVersion", func(t *testing.T) {

		workDir := t.TempDir()
		changelog := "# Changelog\n\n## [1.2.4]\n\n- Not released yet\n\n## [1.2.3]\n\n- Added plugin support\n"
		assert.Nil(t, os.WriteFile(filepath.Join(workDir, "CHANGELOG.md"), []byte(changelog), 0600))

		svc := &service{config: getConfig(workDir)}

		// act
		_, err := svc.changelogNotes("1.2.3")

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "1.2.4")
	})

	t.Run("ReturnsTheTopSectionBodyForTheReleasedVersion", func(t *testing.T) {

		workDir := t.TempDir()
		writeChangelog(t, workDir)

		svc := &service{config: getConfig(workDir)}

		// act
		notes, err := svc.changelogNotes("1.2.3")

		assert.Nil(t, err)
		assert.Equal(t, "- Added plugin support", notes)
	})

	t.Run("FailsWhenTheChangelogFileIsMissing", func(t *testing.T) {

		svc := &service{config: getConfig(t.TempDir())}

		// act
		_, err := svc.changelogNotes("1.2.3")

		assert.NotNil(t, err)
	})
}
