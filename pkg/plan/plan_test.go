package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultPlanIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultPlanYAMLRoundTrip(t *testing.T) {
	p := Default()

	data, err := yaml.Marshal(p)
	require.NoError(t, err)

	var got Plan
	require.NoError(t, yaml.Unmarshal(data, &got))

	require.Len(t, got, len(p))
	for i := range p {
		assert.Equal(t, p[i].Name, got[i].Name)
		assert.Equal(t, p[i].Plan.Commands, got[i].Plan.Commands)
		assert.Equal(t, p[i].Plan.InlineFiles, got[i].Plan.InlineFiles)
		assert.Equal(t, p[i].Plan.MSRs, got[i].Plan.MSRs)
	}
}

func TestLoadPreservesModuleOrder(t *testing.T) {
	content := `
zmod:
  commands:
    - command: uname -a
      dirname: uname
amod:
  commands:
    - command: lscpu
      dirname: lscpu
mmod:
  commands:
    - command: lspci
      dirname: lspci
`
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	names := make([]string, 0, len(p))
	for _, m := range p {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"zmod", "amod", "mmod"}, names)
}

func TestLoadInvalidPlans(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not a mapping",
			content: "- just\n- a\n- list\n",
		},
		{
			name: "empty command",
			content: `mod:
  commands:
    - command: ""
      dirname: out
`,
		},
		{
			name: "absolute dirname",
			content: `mod:
  commands:
    - command: lscpu
      dirname: /etc
`,
		},
		{
			name: "dirname escapes tree",
			content: `mod:
  commands:
    - command: lscpu
      dirname: ../../outside
`,
		},
		{
			name: "register batch missing filename",
			content: `mod:
  msrs:
    addresses: [1904]
    separator1: ":"
    separator2: "|"
    dirname: msr
    filename: ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateDuplicateModules(t *testing.T) {
	p := Plan{
		{Name: "cpu", Plan: CollectionPlan{Commands: []CommandCapture{{Command: "lscpu", Dirname: "lscpu"}}}},
		{Name: "cpu", Plan: CollectionPlan{Commands: []CommandCapture{{Command: "lscpu", Dirname: "lscpu2"}}}},
	}
	assert.Error(t, p.Validate())
}

func TestBuildManifestRewritesDirnames(t *testing.T) {
	m := Module{
		Name: "cpu",
		Plan: CollectionPlan{
			Commands: []CommandCapture{
				{Command: "lscpu", Dirname: "lscpu"},
			},
			InlineFiles: []FileCapture{
				{Command: "cat /proc/cpuinfo", Dirname: "proc", Filename: "cpuinfo.txt", Separator: "--- ", ReadOnly: true},
			},
			MSRs: &RegisterBatch{
				Addresses:  []uint64{0x770},
				Separator1: ":",
				Separator2: "|",
				Dirname:    "msr",
				Filename:   "msr.txt",
			},
		},
	}

	manifest := BuildManifest(m)

	assert.Equal(t, "cpu/lscpu", manifest.Commands[0].Dirname)
	assert.Equal(t, "cpu/proc", manifest.InlineFiles[0].Dirname)
	assert.Equal(t, "cpu/msr", manifest.MSRs.Dirname)

	// Collection-time detail is stripped.
	assert.Empty(t, manifest.InlineFiles[0].Command)
	// Consumer metadata survives.
	assert.Equal(t, "--- ", manifest.InlineFiles[0].Separator)
	assert.True(t, manifest.InlineFiles[0].ReadOnly)
}

func TestBuildManifestDoesNotAliasInput(t *testing.T) {
	m := Module{
		Name: "cpu",
		Plan: CollectionPlan{
			InlineFiles: []FileCapture{
				{Command: "cat /proc/cpuinfo", Dirname: "proc", Filename: "cpuinfo.txt"},
			},
			MSRs: &RegisterBatch{Addresses: []uint64{1, 2}, Dirname: "msr", Filename: "msr.txt"},
		},
	}

	manifest := BuildManifest(m)
	manifest.MSRs.Addresses[0] = 99

	assert.Equal(t, "cat /proc/cpuinfo", m.Plan.InlineFiles[0].Command)
	assert.Equal(t, "proc", m.Plan.InlineFiles[0].Dirname)
	assert.Equal(t, uint64(1), m.Plan.MSRs.Addresses[0])
	assert.Equal(t, "msr", m.Plan.MSRs.Dirname)
}

func TestManifestYAMLHasNoCommandKey(t *testing.T) {
	m := Module{
		Name: "cpu",
		Plan: CollectionPlan{
			InlineFiles: []FileCapture{
				{Command: "cat /proc/cpuinfo", Dirname: "proc", Filename: "cpuinfo.txt", Separator: "\n"},
			},
		},
	}

	data, err := yaml.Marshal(BuildManifest(m))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "command:")
	assert.Contains(t, string(data), "dirname: cpu/proc")
}
