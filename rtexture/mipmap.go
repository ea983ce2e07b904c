// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rtexture

import "github.com/kestrelgfx/forge/driver"

// transitionMasks maps an (old, new) layout pair to the access/stage
// masks a barrier must declare. Pairs absent from the table are
// unsupported transitions and fail with ErrInvalidLayoutTransition.
var transitionMasks = map[[2]driver.Layout]driver.Barrier{
	{driver.LUndefined, driver.LCopyDst}: {
		SyncBefore: driver.SNone, SyncAfter: driver.SCopy,
		AccessBefore: driver.ANone, AccessAfter: driver.ACopyWrite,
	},
	{driver.LUndefined, driver.LColorTarget}: {
		SyncBefore: driver.SNone, SyncAfter: driver.SColorOutput,
		AccessBefore: driver.ANone, AccessAfter: driver.AColorWrite,
	},
	{driver.LUndefined, driver.LDSTarget}: {
		SyncBefore: driver.SNone, SyncAfter: driver.SDSOutput,
		AccessBefore: driver.ANone, AccessAfter: driver.ADSWrite,
	},
	{driver.LCopyDst, driver.LCopySrc}: {
		SyncBefore: driver.SCopy, SyncAfter: driver.SCopy,
		AccessBefore: driver.ACopyWrite, AccessAfter: driver.ACopyRead,
	},
	{driver.LCopyDst, driver.LShaderRead}: {
		SyncBefore: driver.SCopy, SyncAfter: driver.SFragmentShading,
		AccessBefore: driver.ACopyWrite, AccessAfter: driver.AShaderRead,
	},
	{driver.LCopySrc, driver.LShaderRead}: {
		SyncBefore: driver.SCopy, SyncAfter: driver.SFragmentShading,
		AccessBefore: driver.ACopyRead, AccessAfter: driver.AShaderRead,
	},
	{driver.LShaderRead, driver.LCopySrc}: {
		SyncBefore: driver.SFragmentShading, SyncAfter: driver.SCopy,
		AccessBefore: driver.AShaderRead, AccessAfter: driver.ACopyRead,
	},
	{driver.LColorTarget, driver.LPresent}: {
		SyncBefore: driver.SColorOutput, SyncAfter: driver.SNone,
		AccessBefore: driver.AColorWrite, AccessAfter: driver.ANone,
	},
	{driver.LColorTarget, driver.LCopySrc}: {
		SyncBefore: driver.SColorOutput, SyncAfter: driver.SCopy,
		AccessBefore: driver.AColorWrite, AccessAfter: driver.ACopyRead,
	},
	{driver.LColorTarget, driver.LShaderRead}: {
		SyncBefore: driver.SColorOutput, SyncAfter: driver.SFragmentShading,
		AccessBefore: driver.AColorWrite, AccessAfter: driver.AShaderRead,
	},
}

// transition emits a single image-memory barrier for one view, failing
// with ErrInvalidLayoutTransition if the (old, new) pair has no entry in
// transitionMasks.
func transition(cb driver.CmdBuffer, iv driver.ImageView, old, new driver.Layout) error {
	b, ok := transitionMasks[[2]driver.Layout{old, new}]
	if !ok {
		return ErrInvalidLayoutTransition
	}
	cb.Transition([]driver.Transition{{
		Barrier:      b,
		LayoutBefore: old,
		LayoutAfter:  new,
		IView:        iv,
	}})
	return nil
}

// TransitionLayout emits a layout transition for the texture's full view.
func (t *Texture) TransitionLayout(cb driver.CmdBuffer, old, new driver.Layout) error {
	return transition(cb, t.view, old, new)
}

// GenerateMipmaps iteratively blits level i-1 into level i at half the
// extent (minimum 1 in each dimension), transitioning each finished level
// to shader-read-only. It requires cb to be within a
// data-transfer block (BeginBlit). The format must support linear blit of
// sampled images; that support is not checked here.
func (t *Texture) GenerateMipmaps(cb driver.CmdBuffer) error {
	if t.image == nil {
		return ErrNotSupported
	}
	if t.MipLevels <= 1 {
		return nil
	}
	w, h := t.Width, t.Height
	for level := 1; level < t.MipLevels; level++ {
		srcW, srcH := w, h
		w, h = halveExtent(w), halveExtent(h)

		srcView, err := t.image.NewView(driver.IView2D, 0, 1, level-1, 1)
		if err != nil {
			return err
		}
		dstView, err := t.image.NewView(driver.IView2D, 0, 1, level, 1)
		if err != nil {
			srcView.Destroy()
			return err
		}

		// Level 0 always arrives here straight from Write's
		// buffer-to-image copy (LCopyDst); every other source level was
		// left at LShaderRead by the previous iteration.
		srcOld := driver.LShaderRead
		if level == 1 {
			srcOld = driver.LCopyDst
		}
		if err := transition(cb, srcView, srcOld, driver.LCopySrc); err != nil {
			srcView.Destroy()
			dstView.Destroy()
			return err
		}
		if err := transition(cb, dstView, driver.LUndefined, driver.LCopyDst); err != nil {
			srcView.Destroy()
			dstView.Destroy()
			return err
		}

		cb.BlitImage(&driver.ImageBlit{
			From:      t.image,
			FromOff:   [2]driver.Off3D{{}, {X: srcW, Y: srcH, Z: 1}},
			FromLevel: level - 1,
			To:        t.image,
			ToOff:     [2]driver.Off3D{{}, {X: w, Y: h, Z: 1}},
			ToLevel:   level,
		}, driver.FLinear)

		if err := transition(cb, srcView, driver.LCopySrc, driver.LShaderRead); err != nil {
			srcView.Destroy()
			dstView.Destroy()
			return err
		}
		if err := transition(cb, dstView, driver.LCopyDst, driver.LShaderRead); err != nil {
			srcView.Destroy()
			dstView.Destroy()
			return err
		}
		srcView.Destroy()
		dstView.Destroy()
	}
	return nil
}

func halveExtent(n int) int {
	n /= 2
	if n < 1 {
		return 1
	}
	return n
}
