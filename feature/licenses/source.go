package licenses

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/omnivector-solutions/license-manager-sub000/core/backend"
	"github.com/omnivector-solutions/license-manager-sub000/feature/licenses/parsers"
)

// UsageSource produces the raw usage text for one license server configuration.
type UsageSource interface {
	Output(ctx context.Context, config backend.Configuration) (string, error)
}

// CmdUsageSource queries license servers with the vendor CLI tools.
type CmdUsageSource struct {
	cfg Config
}

func NewCmdUsageSource(cfg Config) *CmdUsageSource {
	return &CmdUsageSource{cfg: cfg}
}

// Output tries each configured server in order and returns the first
// successful response, so a redundant server farm survives single outages.
func (s *CmdUsageSource) Output(ctx context.Context, config backend.Configuration) (string, error) {
	if len(config.LicenseServers) == 0 {
		return "", fmt.Errorf("configuration %q has no license servers", config.Name)
	}

	var lastErr error
	for _, server := range config.LicenseServers {
		bin, args, err := s.command(config.Type, server)
		if err != nil {
			return "", err
		}
		out, err := s.run(ctx, bin, args...)
		if err != nil {
			lastErr = err
			continue
		}
		return out, nil
	}
	return "", fmt.Errorf("all license servers failed for %q: %w", config.Name, lastErr)
}

func (s *CmdUsageSource) command(serverType string, server backend.LicenseServer) (string, []string, error) {
	addr := fmt.Sprintf("%d@%s", server.Port, server.Host)
	switch serverType {
	case parsers.ServerTypeFlexLM:
		return s.cfg.LmutilPath, []string{"lmstat", "-a", "-c", addr}, nil
	case parsers.ServerTypeRLM:
		return s.cfg.RlmutilPath, []string{"rlmstat", "-a", "-c", addr}, nil
	case parsers.ServerTypeLMX:
		return s.cfg.LmxendutilPath, []string{"-licstat", "-host", server.Host, "-port", fmt.Sprint(server.Port)}, nil
	case parsers.ServerTypeLSDyna:
		return s.cfg.LstcQrunPath, []string{"-s", addr, "-R"}, nil
	case parsers.ServerTypeOLicense:
		return s.cfg.OlixtoolPath, []string{"lv", "-sv", fmt.Sprintf("%s:%d", server.Host, server.Port)}, nil
	case parsers.ServerTypeDSLS:
		script := fmt.Sprintf("connect %s %d;getLicenseUsage -csv", server.Host, server.Port)
		return s.cfg.DslicsrvPath, []string{"-admin", "-run", script}, nil
	default:
		return "", nil, fmt.Errorf("unknown license server type %q", serverType)
	}
}

func (s *CmdUsageSource) run(ctx context.Context, bin string, args ...string) (string, error) {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", bin, err)
	}
	return string(out), nil
}
