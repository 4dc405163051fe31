/*
Package canvas proxies a 2D drawing context living in a script context.

Every method serializes its arguments with jsvalue and sends exactly one
statement through the window:

	ctx.fillRect(10,10,40,30);
	ctx.fillStyle = ('rgba(255, 0, 0, 1)');
	ctx.lineWidth;

Methods whose script counterpart is overloaded get one Go method per
overload (Fill, FillPath; DrawImage, DrawImageScaled, DrawImageSub).

Values that cannot cross the boundary (gradients, paths, images, pixel
buffers) come back as jsvalue handles bound to fresh global names and
must be released by the caller.

Interceptors registered with Use see every outgoing call in order and may
rewrite its script or cancel it. A cancelled call returns (nil, nil).

Composite helpers (DrawLine, DrawImageCentered, FillTriangle, ClipRect
and friends) are built from the primitives inside WithState, which
restores the context on every exit path.
*/
package canvas
