// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface shows pixpipe canvases on a GPU texture.
//
// Target implements pixpipe.Target. Every Screen pass of a canvas hands
// it the dirty rectangle, and Target uploads just those pixels into a
// gpucontext texture before drawing the texture:
//
//	target, err := surface.New(dc.AsTextureDrawer())
//	if err != nil {
//	    return err
//	}
//	defer target.Close()
//
//	canvas, err := pixpipe.NewCanvas(800, 600, pixpipe.WithTarget(target))
//
// The first present, and any present after the canvas changed size,
// creates the texture from the full buffer through the drawer's
// gpucontext.TextureCreator. Later presents use
// gpucontext.TextureRegionUpdater when the texture implements it and fall
// back to a full gpucontext.TextureUpdater upload otherwise.
//
// # Byte layout
//
// Textures created by TextureCreator take RGBA bytes. Textures supplied
// with WithTexture may name another layout with WithFormat; BGRA8 and
// RGBA8 formats from gputypes are supported.
package surface
