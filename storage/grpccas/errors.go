package grpccas

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/zerowallet/storage"
)

// fromStatus turns a ContentStore status back into the storage sentinel the
// server mapped it from.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return storage.ErrNotFound
	case codes.InvalidArgument:
		return storage.ErrInvalidCID
	case codes.DataLoss:
		return storage.ErrCIDMismatch
	case codes.AlreadyExists:
		return storage.ErrImmutable
	case codes.ResourceExhausted:
		return storage.ErrTooLarge
	}
	// Older servers send the sentinel text with a generic code.
	for _, s := range []error{storage.ErrNotFound, storage.ErrInvalidCID, storage.ErrCIDMismatch, storage.ErrImmutable, storage.ErrTooLarge} {
		if st.Message() == s.Error() {
			return s
		}
	}
	return err
}
