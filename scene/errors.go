package scene

import "errors"

// ErrUnknownDimension is returned when a scene file's dimension field is
// neither "2d" nor "3d".
var ErrUnknownDimension = errors.New("scene: dimension must be \"2d\" or \"3d\"")
