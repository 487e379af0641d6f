//go:build !opencl

package fluid

import "testing"

func TestOpenCLBackendRequiresBuildTag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendOpenCL
	if _, err := NewPipeline(cfg); err == nil {
		t.Fatal("NewPipeline built an OpenCL pipeline without the opencl tag")
	}
}
