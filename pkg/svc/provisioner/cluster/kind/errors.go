package kindprovisioner

import "errors"

// ErrClusterNotFound is returned when the named kind cluster does not exist.
var ErrClusterNotFound = errors.New("cluster not found")
