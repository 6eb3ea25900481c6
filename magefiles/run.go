//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Evaluates every testbed workbook.
func (Run) Eval() error {
	workbooks, err := filepath.Glob("testbed/*.toml")
	if err != nil {
		return err
	}
	fmt.Println("Run eval...")
	args := append([]string{"run", ".", "eval"}, workbooks...)
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}

// Watches the testbed directory and evaluates workbooks as they change.
func (Run) Watch() error {
	if _, err := executeCmd("go", withArgs("run", ".", "watch", "testbed"), withStream()); err != nil {
		return err
	}
	return nil
}
