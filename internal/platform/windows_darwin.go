//go:build darwin

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <libproc.h>
#include <string.h>

// copyMainWindow returns the first (main) window of the application, or NULL.
// The caller owns the returned reference.
static AXUIElementRef copyMainWindow(pid_t pid) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (app == NULL) {
		return NULL;
	}
	CFArrayRef windows = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows);
	CFRelease(app);
	if (err != kAXErrorSuccess || windows == NULL) {
		return NULL;
	}
	if (CFArrayGetCount(windows) == 0) {
		CFRelease(windows);
		return NULL;
	}
	AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(windows, 0);
	CFRetain(win);
	CFRelease(windows);
	return win;
}

static int windowFrame(pid_t pid, int *x, int *y, int *w, int *h) {
	AXUIElementRef win = copyMainWindow(pid);
	if (win == NULL) {
		return -1;
	}
	CFTypeRef posValue = NULL;
	CFTypeRef sizeValue = NULL;
	if (AXUIElementCopyAttributeValue(win, kAXPositionAttribute, &posValue) != kAXErrorSuccess ||
	    AXUIElementCopyAttributeValue(win, kAXSizeAttribute, &sizeValue) != kAXErrorSuccess) {
		if (posValue != NULL) CFRelease(posValue);
		if (sizeValue != NULL) CFRelease(sizeValue);
		CFRelease(win);
		return -2;
	}
	CGPoint pos;
	CGSize size;
	AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &pos);
	AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &size);
	CFRelease(posValue);
	CFRelease(sizeValue);
	CFRelease(win);
	*x = (int)pos.x;
	*y = (int)pos.y;
	*w = (int)size.width;
	*h = (int)size.height;
	return 0;
}

static int moveWindow(pid_t pid, int x, int y, int w, int h) {
	AXUIElementRef win = copyMainWindow(pid);
	if (win == NULL) {
		return -1;
	}
	AXUIElementPerformAction(win, kAXRaiseAction);

	CGPoint pos = CGPointMake((CGFloat)x, (CGFloat)y);
	AXValueRef posValue = AXValueCreate(kAXValueTypeCGPoint, &pos);
	AXError err = AXUIElementSetAttributeValue(win, kAXPositionAttribute, posValue);
	CFRelease(posValue);
	if (err != kAXErrorSuccess) {
		CFRelease(win);
		return (int)err;
	}

	// A rejected resize is not fatal; some applications pin their minimum
	// size and still honor the position.
	CGSize size = CGSizeMake((CGFloat)w, (CGFloat)h);
	AXValueRef sizeValue = AXValueCreate(kAXValueTypeCGSize, &size);
	AXUIElementSetAttributeValue(win, kAXSizeAttribute, sizeValue);
	CFRelease(sizeValue);
	CFRelease(win);
	return 0;
}

// bundleInfoForPID resolves the application bundle identifier and display
// name for a process inside an .app bundle. Returns non-zero for bare
// processes (daemons, CLI tools) which the positioner never targets.
static int bundleInfoForPID(pid_t pid, char *idbuf, int idlen, char *namebuf, int namelen) {
	char path[PROC_PIDPATHINFO_MAXSIZE];
	if (proc_pidpath(pid, path, sizeof(path)) <= 0) {
		return -1;
	}
	char *p = strstr(path, ".app/");
	if (p == NULL) {
		return -1;
	}
	size_t len = (size_t)(p - path) + 4;
	CFURLRef url = CFURLCreateFromFileSystemRepresentation(NULL, (const UInt8 *)path, (CFIndex)len, true);
	if (url == NULL) {
		return -1;
	}
	CFBundleRef bundle = CFBundleCreate(NULL, url);
	CFRelease(url);
	if (bundle == NULL) {
		return -1;
	}
	int ok = -1;
	CFStringRef ident = CFBundleGetIdentifier(bundle);
	if (ident != NULL && CFStringGetCString(ident, idbuf, idlen, kCFStringEncodingUTF8)) {
		ok = 0;
		namebuf[0] = 0;
		CFStringRef name = (CFStringRef)CFBundleGetValueForInfoDictionaryKey(bundle, kCFBundleNameKey);
		if (name != NULL) {
			CFStringGetCString(name, namebuf, namelen, kCFStringEncodingUTF8);
		}
	}
	CFRelease(bundle);
	return ok;
}

static int processTrusted(void) {
	return AXIsProcessTrusted() ? 1 : 0;
}
*/
import "C"

import (
	"context"
	"fmt"
	"time"
	"unsafe"
)

// settleDelay gives the window server time to apply a move before the
// resulting frame is read back.
const settleDelay = 100 * time.Millisecond

func (b *darwinBackend) Trusted() bool {
	return C.processTrusted() == 1
}

func (b *darwinBackend) NaturalSize(_ context.Context, pid int) (Size, error) {
	var x, y, w, h C.int
	if ret := C.windowFrame(C.pid_t(pid), &x, &y, &w, &h); ret != 0 {
		return Size{}, fmt.Errorf("%w: pid %d (code %d)", ErrSizeUnavailable, pid, int(ret))
	}
	return Size{Width: int(w), Height: int(h)}, nil
}

func (b *darwinBackend) Move(ctx context.Context, pid int, target Rect) (Rect, error) {
	if !b.Trusted() {
		return Rect{}, ErrNotTrusted
	}
	if ret := C.moveWindow(C.pid_t(pid), C.int(target.X), C.int(target.Y), C.int(target.Width), C.int(target.Height)); ret != 0 {
		return Rect{}, fmt.Errorf("%w: pid %d (AX code %d)", ErrMoveFailed, pid, int(ret))
	}

	select {
	case <-ctx.Done():
		return Rect{}, ctx.Err()
	case <-time.After(settleDelay):
	}

	var x, y, w, h C.int
	if ret := C.windowFrame(C.pid_t(pid), &x, &y, &w, &h); ret != 0 {
		// Moved but unreadable: report the request as the best estimate.
		return target, nil
	}
	return Rect{X: int(x), Y: int(y), Width: int(w), Height: int(h)}, nil
}

func (b *darwinBackend) RunningApps(_ context.Context) ([]App, error) {
	n := C.proc_listallpids(nil, 0)
	if n <= 0 {
		return nil, fmt.Errorf("proc_listallpids failed: %d", int(n))
	}

	// Leave headroom for processes spawned between the two calls.
	pids := make([]C.pid_t, int(n)+32)
	bufSize := C.int(len(pids)) * C.int(unsafe.Sizeof(pids[0]))
	n = C.proc_listallpids(unsafe.Pointer(&pids[0]), bufSize)
	if n <= 0 {
		return nil, fmt.Errorf("proc_listallpids failed: %d", int(n))
	}

	var apps []App
	var idbuf, namebuf [512]C.char
	for _, pid := range pids[:int(n)] {
		if pid == 0 {
			continue
		}
		if C.bundleInfoForPID(pid, &idbuf[0], 512, &namebuf[0], 512) != 0 {
			continue
		}
		app := App{
			BundleID: C.GoString(&idbuf[0]),
			Name:     C.GoString(&namebuf[0]),
			PID:      int(pid),
		}
		if app.Name == "" {
			app.Name = app.BundleID
		}
		apps = append(apps, app)
	}
	return apps, nil
}
