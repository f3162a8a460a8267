package plan

import "path"

// BuildManifest derives the manifest plan for a finished module snapshot
// from the module's collection plan. It is an explicit transform producing
// a new value: every dirname is prefixed with "{module}/" and every inline
// file's generator command is dropped, since it is a collection-time detail
// and not part of the reusable fixture description. The input plan is never
// modified, and the result carries no transient execution state.
func BuildManifest(m Module) CollectionPlan {
	out := CollectionPlan{}

	if len(m.Plan.Commands) > 0 {
		out.Commands = make([]CommandCapture, len(m.Plan.Commands))
		for i, c := range m.Plan.Commands {
			c.Dirname = path.Join(m.Name, c.Dirname)
			out.Commands[i] = c
		}
	}

	if len(m.Plan.InlineFiles) > 0 {
		out.InlineFiles = make([]FileCapture, len(m.Plan.InlineFiles))
		for i, f := range m.Plan.InlineFiles {
			f.Command = ""
			f.Dirname = path.Join(m.Name, f.Dirname)
			out.InlineFiles[i] = f
		}
	}

	if m.Plan.MSRs != nil {
		msrs := *m.Plan.MSRs
		msrs.Addresses = append([]uint64(nil), m.Plan.MSRs.Addresses...)
		msrs.Dirname = path.Join(m.Name, msrs.Dirname)
		out.MSRs = &msrs
	}

	return out
}
