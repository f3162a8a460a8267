package plan

// CommandCapture declares a whole-command capture: run Command verbatim on
// the target and keep its stdout and stderr under Dirname.
type CommandCapture struct {
	Command string `yaml:"command" json:"command"`
	Dirname string `yaml:"dirname" json:"dirname"`
}

// FileCapture declares a dynamic-file capture. Command produces one combined
// blob encoding many files' worth of content, delimited by Separator. The
// blob is kept verbatim as Dirname/Filename; Separator is metadata for
// downstream consumers and is never interpreted during collection.
type FileCapture struct {
	Command   string `yaml:"command,omitempty" json:"command,omitempty"`
	Dirname   string `yaml:"dirname" json:"dirname"`
	Filename  string `yaml:"filename" json:"filename"`
	Separator string `yaml:"separator" json:"separator"`
	ReadOnly  bool   `yaml:"readonly" json:"readonly"`
}

// RegisterBatch declares a per-CPU MSR sweep: for every logical CPU sample
// every address, keeping one line per CPU in Dirname/Filename. Address order
// within a line always matches Addresses order.
type RegisterBatch struct {
	Addresses  []uint64 `yaml:"addresses" json:"addresses"`
	Separator1 string   `yaml:"separator1" json:"separator1"`
	Separator2 string   `yaml:"separator2" json:"separator2"`
	Dirname    string   `yaml:"dirname" json:"dirname"`
	Filename   string   `yaml:"filename" json:"filename"`
}

// CollectionPlan groups the captures of one module. Within a module the
// collection order is fixed: commands, then inline files, then the register
// batch.
type CollectionPlan struct {
	Commands    []CommandCapture `yaml:"commands,omitempty" json:"commands,omitempty"`
	InlineFiles []FileCapture    `yaml:"inlinefiles,omitempty" json:"inlinefiles,omitempty"`
	MSRs        *RegisterBatch   `yaml:"msrs,omitempty" json:"msrs,omitempty"`
}

// Module is a named logical grouping of related captures.
type Module struct {
	Name string
	Plan CollectionPlan
}

// Plan is an ordered list of modules. A slice rather than a map so the
// module order survives into the snapshot and the manifests.
type Plan []Module

// Default returns the built-in collection plan. Commands and file sweeps
// cover CPU topology, idle/frequency state and PCIe ASPM configuration; the
// register batch covers the MSRs the downstream configuration tool reads.
func Default() Plan {
	return Plan{
		{
			Name: "cpu",
			Plan: CollectionPlan{
				Commands: []CommandCapture{
					{Command: "lscpu", Dirname: "lscpu"},
					{Command: "lscpu --all -p=CPU,CORE,SOCKET,NODE", Dirname: "lscpu-topology"},
				},
				InlineFiles: []FileCapture{
					{
						Command:   `for f in $(find /sys/devices/system/cpu -type f -name "*" 2>/dev/null | sort); do echo "--- $f"; cat "$f" 2>/dev/null; done`,
						Dirname:   "sys",
						Filename:  "sys.txt",
						Separator: "--- ",
						ReadOnly:  true,
					},
				},
				MSRs: &RegisterBatch{
					Addresses: []uint64{
						0xE2,  // PKG_CST_CONFIG_CONTROL
						0x198, // PERF_STATUS
						0x1A0, // MISC_ENABLE
						0x1FC, // POWER_CTL
						0x606, // RAPL_POWER_UNIT
						0x610, // PKG_POWER_LIMIT
						0x770, // PM_ENABLE
						0x771, // HWP_CAPABILITIES
						0x774, // HWP_REQUEST
					},
					Separator1: ":",
					Separator2: "|",
					Dirname:    "msr",
					Filename:   "msr.txt",
				},
			},
		},
		{
			Name: "aspm",
			Plan: CollectionPlan{
				Commands: []CommandCapture{
					{Command: "lspci", Dirname: "lspci"},
				},
				InlineFiles: []FileCapture{
					{
						Command:   `for f in /sys/module/pcie_aspm/parameters/*; do echo "--- $f"; cat "$f" 2>/dev/null; done`,
						Dirname:   "pcie_aspm",
						Filename:  "parameters.txt",
						Separator: "--- ",
						ReadOnly:  false,
					},
				},
			},
		},
	}
}
