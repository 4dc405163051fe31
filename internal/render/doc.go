/*
Package render drives a retained set of drawable items against a canvas
context.

Each frame runs in two passes. The update pass calls Update on every item
with the elapsed frame time. The draw pass resolves each item's type tag
and runs its draw routine: the built-in rectangle routine, or one added
with Register. An item whose tag has no routine fails the frame with
UnknownRenderItemTypeError and the remaining items are not drawn.

Driver repeats frames at a fixed rate, each one inside a window batch so
a frame costs a single round trip.
*/
package render
