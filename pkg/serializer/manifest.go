package serializer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hostsnap/hostsnap/pkg/defaults"
)

// provenanceComment names the generating tool at the top of every manifest.
// No timestamp, by contract: writing the same plan twice must produce
// byte-identical files.
const provenanceComment = "# Generated by the 'hostsnap' tool.\n"

// ManifestWriter serializes per-module manifest plans into the output root
// as tagged, human-readable YAML files named after their module.
type ManifestWriter struct {
	OutRoot string
}

// NewManifestWriter creates a manifest writer rooted at outRoot.
func NewManifestWriter(outRoot string) *ManifestWriter {
	return &ManifestWriter{OutRoot: outRoot}
}

// Write serializes the manifest plan for one module to
// "<outroot>/<module>.yaml", truncating any prior content.
func (w *ManifestWriter) Write(module string, manifest any) error {
	path := filepath.Join(w.OutRoot, module+defaults.ManifestExtension)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest %s: %w", path, err)
	}

	if _, err := f.WriteString(provenanceComment); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(manifest); err != nil {
		f.Close()
		return fmt.Errorf("failed to serialize manifest %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to serialize manifest %s: %w", path, err)
	}

	return f.Close()
}
