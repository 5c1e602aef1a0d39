package scanner

import (
	"context"

	"go.uber.org/zap"

	"portscanner/netutil"
	"portscanner/port"
)

// Run is the engine's entry point: expand the port spec, resolve the target,
// apply the scan policy and execute the scan. Parse, resolution and policy
// failures abort before any probe runs; individual probe failures never abort
// the scan and are recorded in the Result instead.
func Run(ctx context.Context, target, spec string, opts Options, lg *zap.Logger) (*Result, error) {
	ports, err := port.ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	addr, err := netutil.ResolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if err := opts.Policy.Check(addr); err != nil {
		return nil, err
	}
	m, err := NewManager(target, addr, ports, opts, lg)
	if err != nil {
		return nil, err
	}
	return m.Scan(ctx)
}
