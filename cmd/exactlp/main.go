// SPDX-License-Identifier: MIT

// Command exactlp solves mixed integer programs and parametric integer
// programs described by problem files.
//
//	exactlp mip -f box.yaml
//	exactlp pip -f loops.yaml --at n=10,m=4
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCommandRoot(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		klog.Flush()
		os.Exit(1)
	}
}
