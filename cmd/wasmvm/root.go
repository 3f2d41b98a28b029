package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wasmvm",
		Short: "Run text-format scripts against a stack-based bytecode interpreter",
		Long: `wasmvm - Run text-format scripts against a stack-based bytecode interpreter.

A script defines modules and commands which invoke their exports, ex.

  (module
    (func $div (param i32 i32) (result i32)
      (return (i32.div_u (local.get 0) (local.get 1))))
    (export "div" (func $div)))
  (assert_return (invoke "div" (i32.const 7) (i32.const 2)) (i32.const 3))
  (assert_trap (invoke "div" (i32.const 10) (i32.const 0)) "integer divide by zero")`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", "", "Path to a TOML config file")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().String("log-format", "", "Log format: console, json (default: console)")

	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}
