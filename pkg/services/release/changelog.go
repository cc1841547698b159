package release

import (
	"regexp"
	"strings"
)

var changelogHeaderRegex = regexp.MustCompile(`^##\s+\[(\d+\.\d+\.\d+)\]`)

// firstChangelogSection returns the version and body of the first version
// section in a keep-a-changelog style file
func firstChangelogSection(changelog string) (version, body string, found bool) {

	lines := strings.Split(changelog, "\n")

	var bodyLines []string
	for _, line := range lines {
		matches := changelogHeaderRegex.FindStringSubmatch(line)
		if matches != nil {
			if found {
				break
			}
			found = true
			version = matches[1]
			continue
		}
		if found {
			bodyLines = append(bodyLines, line)
		}
	}

	if !found {
		return "", "", false
	}

	return version, strings.TrimSpace(strings.Join(bodyLines, "\n")), true
}
