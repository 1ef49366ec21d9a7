package acoustics

import "errors"

// InvalidGeometry is returned by the Build* constructors for any of the
// build-time failures §7 names: an empty surface list, a polygon with fewer
// than 3 vertices, a degenerate polygon or wall, or a missing source.
var InvalidGeometry = errors.New("acoustics: invalid geometry")

// InvalidQuery is returned by GetPaths when the listener is missing (nil).
var InvalidQuery = errors.New("acoustics: invalid query")

// ErrDegenerate is a diagnostic, not a failure: it surfaces a numerically
// degenerate intersection or split that the core already recovered from
// locally (treated as "no intersection"), per §7's NumericallyDegenerate
// classification. Nothing in this package returns it as a call error today;
// it is exported for callers that want to classify recovered-from
// degeneracies reported through other channels (e.g. future logging hooks).
var ErrDegenerate = errors.New("acoustics: numerically degenerate")
