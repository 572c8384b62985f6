// Package master tracks changes of the system clipboard and invokes a
// Handler on each of them.
//
// One backend is compiled in per platform:
//
//	master_windows.go  message-only window registered as clipboard format listener
//	master_darwin.go   NSPasteboard change counter polling
//	master_x11.go      XFIXES selection owner events (linux, BSD)
//	master_other.go    unsupported stub
//
// Example:
//
//	m, err := master.New(handler)
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	shutdown := m.ShutdownChannel()
//	go func() {
//		<-quit
//		shutdown.Signal()
//	}()
//
//	return m.Run()
package master
