package main

import "runtime/pprof"
import "os"
import "os/signal"
import "syscall"

var profile *os.File

func init() {
	for _, arg := range os.Args {
		if arg == "-pgo" || arg == "--pgo" {
			f, err := os.Create("default.pgo")
			if err != nil {
				println(err.Error())
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				println(err.Error())
				f.Close()
				return
			}
			profile = f

			// an interrupted run keeps its profile
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				stopProfile()
				os.Exit(130)
			}()
			return
		}
	}
}

func stopProfile() {
	if profile != nil {
		pprof.StopCPUProfile()
		profile.Close()
		profile = nil
	}
}
