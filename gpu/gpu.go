// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu creates wgpu HAL render pipelines for glow effects.
//
// The device is received from the host, never created here. Pass a hal.Device
// directly to [NewPipeline], or a gpucontext.DeviceProvider that also exposes
// HAL types to [NewPipelineFromProvider]:
//
//	fx := glow.New(glow.WithMesh(mesh))
//	prog := shader.NewProgram(shader.Options{Skinning: fx.Material().Skinning})
//	_ = fx.AttachStages(prog)
//	p, err := gpu.NewPipelineFromProvider(provider, fx, prog, gpu.PipelineOptions{})
//	if err != nil {
//	    return err
//	}
//	defer p.Destroy()
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/glow"
	"github.com/gogpu/glow/shader"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned when no device is supplied.
	ErrNilDevice = errors.New("gpu: device is nil")

	// ErrNilProvider is returned when the provider is nil.
	ErrNilProvider = errors.New("gpu: provider is nil")

	// ErrNoHalDevice is returned when a provider does not expose a hal.Device.
	ErrNoHalDevice = errors.New("gpu: provider does not expose a HAL device")

	// ErrNilEffect is returned when the effect or program is nil.
	ErrNilEffect = errors.New("gpu: effect or program is nil")
)

// NewPipelineFromProvider creates a pipeline on the provider's device.
//
// The provider must implement HalDevice() any returning a hal.Device. When
// opts.ColorFormat is undefined, the provider's surface format is used.
func NewPipelineFromProvider(provider gpucontext.DeviceProvider, fx *glow.Effect, prog *shader.Program, opts PipelineOptions) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHalDevice, hp.HalDevice())
	}
	if opts.ColorFormat == gputypes.TextureFormatUndefined {
		opts.ColorFormat = provider.SurfaceFormat()
	}
	return NewPipeline(device, fx, prog, opts)
}
