// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rtexture

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/gpumem"
	"github.com/kestrelgfx/forge/memtag"
)

// Write streams data into the texture through a host-visible staging
// buffer: it allocates a one-time staging buffer, copies data in, records
// a transition-to-transfer-dst plus a buffer-to-image copy into cb, then
// regenerates mipmaps. cb must already be within a
// data-transfer block (BeginBlit); the caller is responsible for
// Begin/End/Commit around it and for destroying the returned staging
// buffer only after the commit completes.
func (t *Texture) Write(cb driver.CmdBuffer, data []byte, size, offset int) (staging *gpumem.Buffer, err error) {
	staging, err = gpumem.NewBuffer(t.gpu, int64(size), true, driver.UGeneric, memtag.Texture)
	if err != nil {
		return nil, err
	}
	staging.LoadData(data[offset:offset+size], 0)

	old := driver.LUndefined
	if t.written {
		old = driver.LShaderRead
	}
	if err := t.TransitionLayout(cb, old, driver.LCopyDst); err != nil {
		staging.Destroy()
		return nil, err
	}

	cb.CopyBufToImg(&driver.BufImgCopy{
		Buf:    staging.Driver(),
		Stride: [2]int64{int64(t.Width), int64(t.Height)},
		Img:    t.image,
		Size:   driver.Dim3D{Width: t.Width, Height: t.Height, Depth: 1},
	})

	if t.MipLevels > 1 {
		if err := t.GenerateMipmaps(cb); err != nil {
			staging.Destroy()
			return nil, err
		}
	} else if err := t.TransitionLayout(cb, driver.LCopyDst, driver.LShaderRead); err != nil {
		staging.Destroy()
		return nil, err
	}
	t.written = true
	return staging, nil
}
