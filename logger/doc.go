// Package logger provides structured logging for xgen applications
// using zerolog.
//
// It supports JSON and console formats, stdout/stderr/file sinks,
// asynchronous delivery through a lock-free diode buffer, and
// module-scoped loggers whose level and enable switch can be changed at
// run time.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "both"
//	  file: "logs/genrun.log"
//	  async: true
//	  modules:
//	    - name: "recipe"
//	      level: "debug"
//
// # Usage
//
//	log := logger.Get("recipe")
//	log.Info("plan built", logger.Fields("stages", 3))
//
// The gen package never logs; instrumentation lives in calling code.
package logger
