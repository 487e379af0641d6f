//go:build opencl

package fluid

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// Fields live on the device as half words, four per cell, read and written
// through vload_half4/vstore_half4 so the layout matches GridField exactly.
const fluidKernelSource = `
#define FALLOFF_EPS 1e-4f

inline float4 read_cell(__global const half* f, const int n, int x, int y) {
    x = clamp(x, 0, n - 1);
    y = clamp(y, 0, n - 1);
    return vload_half4(y * n + x, f);
}

inline float4 sample_bilinear(__global const half* f, const int n, float2 p) {
    float hi = (float)(n - 1);
    p = clamp(p, (float2)(0.0f, 0.0f), (float2)(hi, hi));
    float2 base = floor(p);
    float2 t = p - base;
    int x0 = (int)base.x;
    int y0 = (int)base.y;
    float4 a = read_cell(f, n, x0, y0);
    float4 b = read_cell(f, n, x0 + 1, y0);
    float4 c = read_cell(f, n, x0, y0 + 1);
    float4 d = read_cell(f, n, x0 + 1, y0 + 1);
    float4 top = a + (b - a) * t.x;
    float4 bottom = c + (d - c) * t.x;
    return top + (bottom - top) * t.y;
}

__kernel void inject(
    const int n,
    const float strength,
    const float radius,
    const float px,
    const float py,
    const float dx,
    const float dy,
    __global half* vel,
    __global half* dens)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float rx = (float)x - px;
    float ry = (float)y - py;
    float w = exp(-(rx * rx + ry * ry) / (radius * radius + FALLOFF_EPS));
    float4 v = vload_half4(idx, vel);
    v.x += dx * w;
    v.y += dy * w;
    vstore_half4(v, idx, vel);
    float4 d = vload_half4(idx, dens);
    d.x += strength * w;
    vstore_half4(d, idx, dens);
}

__kernel void advect_velocity(
    const int n,
    const float dt,
    const float dissipation,
    __global const half* src,
    __global half* dst)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float4 v = vload_half4(idx, src);
    float2 back = (float2)((float)x, (float)y) - v.xy * dt;
    float4 s = sample_bilinear(src, n, back);
    vstore_half4((float4)(s.x * dissipation, s.y * dissipation, 0.0f, 0.0f), idx, dst);
}

__kernel void advect_density(
    const int n,
    const float dt,
    const float dissipation,
    __global const half* vel,
    __global const half* src,
    __global half* dst)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float4 v = vload_half4(idx, vel);
    float2 back = (float2)((float)x, (float)y) - v.xy * dt;
    float4 s = sample_bilinear(src, n, back);
    vstore_half4((float4)(s.x * dissipation, 0.0f, 0.0f, 0.0f), idx, dst);
}

__kernel void divergence(
    const int n,
    __global const half* vel,
    __global half* div,
    __global half* p0,
    __global half* p1)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float east = read_cell(vel, n, x + 1, y).x;
    float west = read_cell(vel, n, x - 1, y).x;
    float north = read_cell(vel, n, x, y + 1).y;
    float south = read_cell(vel, n, x, y - 1).y;
    float d = 0.5f * ((east - west) + (north - south));
    vstore_half4((float4)(d, 0.0f, 0.0f, 0.0f), idx, div);
    vstore_half4((float4)(0.0f), idx, p0);
    vstore_half4((float4)(0.0f), idx, p1);
}

__kernel void jacobi(
    const int n,
    __global const half* src,
    __global const half* div,
    __global half* dst)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float l = read_cell(src, n, x - 1, y).x;
    float r = read_cell(src, n, x + 1, y).x;
    float b = read_cell(src, n, x, y - 1).x;
    float t = read_cell(src, n, x, y + 1).x;
    float d = vload_half4(idx, div).x;
    vstore_half4((float4)((l + r + b + t - d) * 0.25f, 0.0f, 0.0f, 0.0f), idx, dst);
}

__kernel void project(
    const int n,
    __global const half* pressure,
    __global half* vel)
{
    int x = get_global_id(0);
    int y = get_global_id(1);
    if (x >= n || y >= n) {
        return;
    }
    int idx = y * n + x;
    float gx = read_cell(pressure, n, x + 1, y).x - read_cell(pressure, n, x - 1, y).x;
    float gy = read_cell(pressure, n, x, y + 1).x - read_cell(pressure, n, x, y - 1).x;
    float4 v = vload_half4(idx, vel);
    v.x -= 0.5f * gx;
    v.y -= 0.5f * gy;
    vstore_half4(v, idx, vel);
}
`

type openCLBackend struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	inject     *cl.Kernel
	advectVel  *cl.Kernel
	advectDens *cl.Kernel
	divergence *cl.Kernel
	jacobi     *cl.Kernel
	project    *cl.Kernel

	velA, velB   *cl.MemObject
	densA, densB *cl.MemObject
	presA, presB *cl.MemObject
	divBuf       *cl.MemObject

	size       int
	forceScale float32
	deviceName string

	// staging receives the read-back of a finished frame before it is
	// committed to the host fields.
	staging *fieldSet
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

func newOpenCLBackend(size int, forceScale float32) (*openCLBackend, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	b := &openCLBackend{
		size:       size,
		forceScale: forceScale,
		deviceName: device.Name(),
		staging:    newFieldSet(size),
	}
	if err := b.init(device); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

// init builds the program and allocates buffers. On error the caller
// releases whatever was created through close.
func (b *openCLBackend) init(device *cl.Device) error {
	var err error
	if b.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if b.queue, err = b.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if b.program, err = b.context.CreateProgramWithSource([]string{fluidKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := b.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	kernels := []struct {
		name string
		dst  **cl.Kernel
	}{
		{"inject", &b.inject},
		{"advect_velocity", &b.advectVel},
		{"advect_density", &b.advectDens},
		{"divergence", &b.divergence},
		{"jacobi", &b.jacobi},
		{"project", &b.project},
	}
	for _, k := range kernels {
		if *k.dst, err = b.program.CreateKernel(k.name); err != nil {
			return fmt.Errorf("creating %s kernel: %w", k.name, err)
		}
	}
	byteSize := b.size * b.size * channels * int(unsafe.Sizeof(uint16(0)))
	buffers := []**cl.MemObject{&b.velA, &b.velB, &b.densA, &b.densB, &b.presA, &b.presB, &b.divBuf}
	for i, dst := range buffers {
		if *dst, err = b.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
			return fmt.Errorf("allocating field buffer %d: %w", i, err)
		}
	}
	return nil
}

func (b *openCLBackend) name() string { return BackendOpenCL }

// DeviceName reports the OpenCL device in use.
func (b *openCLBackend) DeviceName() string { return b.deviceName }

func (b *openCLBackend) write(buf *cl.MemObject, f *GridField) error {
	data := f.raw()
	byteLen := len(data) * int(unsafe.Sizeof(uint16(0)))
	_, err := b.queue.EnqueueWriteBuffer(buf, false, 0, byteLen, unsafe.Pointer(&data[0]), nil)
	return err
}

func (b *openCLBackend) read(buf *cl.MemObject, f *GridField) error {
	data := f.raw()
	byteLen := len(data) * int(unsafe.Sizeof(uint16(0)))
	_, err := b.queue.EnqueueReadBuffer(buf, true, 0, byteLen, unsafe.Pointer(&data[0]), nil)
	return err
}

// dispatch enqueues k over the full grid. The in-order queue finishes one
// kernel before the next starts, which is the barrier between passes.
func (b *openCLBackend) dispatch(k *cl.Kernel, args ...interface{}) error {
	if err := k.SetArgs(args...); err != nil {
		return err
	}
	_, err := b.queue.EnqueueNDRangeKernel(k, nil, []int{b.size, b.size}, nil, nil)
	return err
}

func (b *openCLBackend) frame(fs *fieldSet, p SimParams) error {
	n := int32(b.size)
	if err := b.write(b.velA, fs.velocity.Front()); err != nil {
		return deviceErr("uploading velocity", err)
	}
	if err := b.write(b.densA, fs.density.Front()); err != nil {
		return deviceErr("uploading density", err)
	}
	velCur, velNext := b.velA, b.velB
	densCur, densNext := b.densA, b.densB
	presCur, presNext := b.presA, b.presB

	if p.PointerActive {
		if err := b.dispatch(b.inject, n, p.ForcingStrength, p.ForcingRadius,
			p.PointerPosition.X, p.PointerPosition.Y,
			p.PointerDelta.X*b.forceScale, p.PointerDelta.Y*b.forceScale,
			velCur, densCur); err != nil {
			return deviceErr("injecting sources", err)
		}
	}
	if err := b.dispatch(b.advectVel, n, p.Timestep, p.Dissipation, velCur, velNext); err != nil {
		return deviceErr("advecting velocity", err)
	}
	velCur, velNext = velNext, velCur
	if err := b.dispatch(b.advectDens, n, p.Timestep, p.Dissipation, velCur, densCur, densNext); err != nil {
		return deviceErr("advecting density", err)
	}
	densCur, densNext = densNext, densCur
	if err := b.dispatch(b.divergence, n, velCur, b.divBuf, presCur, presNext); err != nil {
		return deviceErr("computing divergence", err)
	}
	for i := uint32(0); i < p.JacobiIterations; i++ {
		if err := b.dispatch(b.jacobi, n, presCur, b.divBuf, presNext); err != nil {
			return deviceErr("relaxing pressure", err)
		}
		presCur, presNext = presNext, presCur
	}
	if err := b.dispatch(b.project, n, presCur, velCur); err != nil {
		return deviceErr("projecting velocity", err)
	}

	st := b.staging
	reads := []struct {
		buf *cl.MemObject
		dst *GridField
	}{
		{velCur, st.velocity.Front()},
		{densCur, st.density.Front()},
		{presCur, st.pressure.Front()},
		{b.divBuf, st.divergence},
	}
	for _, r := range reads {
		if err := b.read(r.buf, r.dst); err != nil {
			return deviceErr("reading back fields", err)
		}
	}

	fs.velocity.Front().CopyFrom(st.velocity.Front())
	fs.density.Front().CopyFrom(st.density.Front())
	fs.pressure.Front().CopyFrom(st.pressure.Front())
	fs.divergence.CopyFrom(st.divergence)
	return nil
}

func (b *openCLBackend) close() {
	for _, buf := range []**cl.MemObject{&b.velA, &b.velB, &b.densA, &b.densB, &b.presA, &b.presB, &b.divBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	for _, k := range []**cl.Kernel{&b.inject, &b.advectVel, &b.advectDens, &b.divergence, &b.jacobi, &b.project} {
		if *k != nil {
			(*k).Release()
			*k = nil
		}
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
}
