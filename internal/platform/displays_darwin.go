//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>
*/
import "C"

import (
	"context"
	"fmt"
)

const maxDisplays = 16

// Displays enumerates active displays via CoreGraphics. CGDisplayBounds
// reports window-positioning (Quartz) coordinates, so each origin is
// converted to the display-arrangement (Cocoa) convention here; the
// registry derives positioning origins back from arrangement data the same
// way for every enumerator backend.
func (b *darwinBackend) Displays(_ context.Context) ([]RawMonitor, error) {
	var ids [maxDisplays]C.CGDirectDisplayID
	var count C.uint32_t

	if ret := C.CGGetActiveDisplayList(maxDisplays, &ids[0], &count); ret != C.kCGErrorSuccess {
		return nil, fmt.Errorf("CGGetActiveDisplayList failed: code %d", int(ret))
	}
	if count == 0 {
		return nil, fmt.Errorf("no active displays reported")
	}

	mainID := C.CGMainDisplayID()
	mainBounds := C.CGDisplayBounds(mainID)
	mainHeight := int(mainBounds.size.height)

	monitors := make([]RawMonitor, 0, int(count))
	for i := 0; i < int(count); i++ {
		id := ids[i]
		bounds := C.CGDisplayBounds(id)

		w := int(bounds.size.width)
		h := int(bounds.size.height)
		quartzX := int(bounds.origin.x)
		quartzY := int(bounds.origin.y)

		monitors = append(monitors, RawMonitor{
			Name:         displayName(id),
			Width:        w,
			Height:       h,
			ArrangementX: quartzX,
			ArrangementY: mainHeight - quartzY - h,
			IsMain:       id == mainID,
			IsBuiltin:    C.CGDisplayIsBuiltin(id) != 0,
		})
	}

	return monitors, nil
}

// displayName builds a stable hardware-derived key. CoreGraphics exposes no
// human-readable display name, so vendor/model/unit numbers stand in.
func displayName(id C.CGDirectDisplayID) string {
	if C.CGDisplayIsBuiltin(id) != 0 {
		return "Built-in Display"
	}
	return fmt.Sprintf("Display-%d-%d-%d",
		uint32(C.CGDisplayVendorNumber(id)),
		uint32(C.CGDisplayModelNumber(id)),
		uint32(C.CGDisplayUnitNumber(id)))
}
