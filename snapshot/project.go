package snapshot

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector resolves a project display name for snapshots captured without
// one, probing build marker files upward from the snapshot location.
type Detector struct {
	markers []string
}

// NewDetector creates a detector covering the build systems the extraction
// side supports.
func NewDetector() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",
			"package.json",
			"pom.xml",
			"build.gradle",
			"settings.gradle.kts",
		},
	}
}

// DetectName walks up from location until a recognized marker file yields a
// project name. It returns an empty string when nothing up the tree names
// the project.
func (d *Detector) DetectName(location string) string {
	if location == "" {
		return ""
	}
	dir := location
	if info, err := os.Stat(location); err == nil && !info.IsDir() {
		dir = filepath.Dir(location)
	}
	for {
		for _, marker := range d.markers {
			candidate := filepath.Join(dir, marker)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if name := projectName(candidate, marker); name != "" {
				return name
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

var (
	modulePattern      = regexp.MustCompile(`module\s+(\S+)`)
	packageNamePattern = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	artifactIDPattern  = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleNamePattern  = regexp.MustCompile(`rootProject\.name\s*=\s*['"]([^'"]+)['"]`)
)

func projectName(markerPath, marker string) string {
	switch marker {
	case "go.mod":
		return goModuleName(markerPath)
	case "package.json":
		return matchFirst(markerPath, packageNamePattern)
	case "pom.xml":
		return matchFirst(markerPath, artifactIDPattern)
	default:
		return matchFirst(markerPath, gradleNamePattern)
	}
}

// goModuleName prefers a proper modfile parse and falls back to a regexp
// scan when the file does not parse.
func goModuleName(markerPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), markerPath); len(content) > 0 {
		if mod, _ := modfile.Parse(markerPath, content, nil); mod != nil && mod.Module != nil {
			return path.Base(mod.Module.Mod.Path)
		}
	}
	if name := matchFirst(markerPath, modulePattern); name != "" {
		return path.Base(name)
	}
	return ""
}

func matchFirst(markerPath string, pattern *regexp.Regexp) string {
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return ""
	}
	if matches := pattern.FindSubmatch(data); len(matches) > 1 {
		return string(matches[1])
	}
	return ""
}
