package tunnel

import "fmt"

// DefaultSubdomains is the decomposition count used when no machine group is
// specified.
const DefaultSubdomains = 4

// MachineGroup describes an execution target for the external solver. Only
// the vCPU count matters to this package; everything else about the machine
// is the job backend's concern.
type MachineGroup struct {
	Name  string
	VCPUs int
}

// SubdomainsForVCPUs maps a vCPU count to a domain decomposition count for
// parallel solving: half the vCPUs, with a floor of one. The floor matters
// below two vCPUs, where integer halving would otherwise request a
// zero-subdomain decomposition from the solver.
func SubdomainsForVCPUs(vcpus int) int {
	n := vcpus / 2
	if n < 1 {
		return 1
	}
	return n
}

// Subdomains resolves the decomposition count for a machine group. A nil
// group selects the default machine group and its fixed decomposition count.
// A group with a non-positive vCPU count is a configuration error rather
// than a silent fallback.
func Subdomains(mg *MachineGroup) (int, error) {
	if mg == nil {
		return DefaultSubdomains, nil
	}
	if mg.VCPUs <= 0 {
		return 0, &ConfigurationError{
			Field:  "machine_group",
			Reason: fmt.Sprintf("machine group %q has invalid vCPU count %d", mg.Name, mg.VCPUs),
		}
	}
	return SubdomainsForVCPUs(mg.VCPUs), nil
}
