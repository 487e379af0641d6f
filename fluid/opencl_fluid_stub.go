//go:build !opencl

package fluid

import "errors"

type openCLBackend struct{}

func newOpenCLBackend(size int, forceScale float32) (*openCLBackend, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (b *openCLBackend) name() string { return BackendOpenCL }

func (b *openCLBackend) frame(fs *fieldSet, p SimParams) error {
	return deviceErr("running frame", errors.New("OpenCL backend unavailable"))
}

func (b *openCLBackend) close() {}

// DeviceName reports the OpenCL device in use.
func (b *openCLBackend) DeviceName() string { return "" }
