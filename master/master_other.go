//go:build !windows && !darwin && !((linux && !android) || freebsd || netbsd || openbsd || dragonfly)

package master

type backend struct{}

func newBackend(_ *signaler) (*backend, error) {
	return nil, ErrUnsupported
}

func (*backend) run(Handler, <-chan struct{}) error { return ErrUnsupported }

func (*backend) close() error { return nil }
