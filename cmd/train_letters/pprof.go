package main

import "os"
import "os/signal"
import "runtime/pprof"
import "syscall"

import "github.com/sirupsen/logrus"

// -pgo writes a CPU profile to default.pgo until the process is interrupted
func init() {
	for _, arg := range os.Args {
		if arg == "-pgo" || arg == "--pgo" {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			f, err := os.Create("default.pgo")
			if err != nil {
				logrus.WithError(err).Warn("cannot create profile")
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				logrus.WithError(err).Warn("cannot start profile")
				f.Close()
				return
			}
			go func() {
				<-sigChan
				pprof.StopCPUProfile()
				f.Close()
				os.Exit(130)
			}()
			return
		}
	}
}
