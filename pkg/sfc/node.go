package sfc

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ispapp/sandpad/internal/logger"
)

//go:embed bridge.js
var bridgeScript string

// ErrNodeUnavailable is returned when the node executable cannot be found.
var ErrNodeUnavailable = errors.New("node executable not found")

// CompileError is a parse or compile failure reported by the component
// compiler.
type CompileError struct {
	Message string
	Loc     *Location
}

func (e *CompileError) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%d:%d: %s", e.Loc.Line, e.Loc.Column, e.Message)
	}
	return e.Message
}

// NodeCompiler runs @vue/compiler-sfc in a node subprocess, one process per
// call. Dir is the working directory the compiler package is resolved from;
// NodeModules, when set, is passed as NODE_PATH.
type NodeCompiler struct {
	NodePath    string
	Dir         string
	NodeModules string
	Filename    string
	Log         *logger.Logger
}

type bridgeRequest struct {
	Op       string `json:"op"`
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
	ID       string `json:"id"`
}

type bridgeResponse struct {
	Descriptor *Descriptor   `json:"descriptor,omitempty"`
	Script     *ScriptBlock  `json:"script,omitempty"`
	Error      *CompileError `json:"error,omitempty"`
}

func (e *CompileError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message string    `json:"message"`
		Loc     *Location `json:"loc"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Message, e.Loc = raw.Message, raw.Loc
	return nil
}

// Parse implements Compiler.
func (c *NodeCompiler) Parse(ctx context.Context, source string) (*Descriptor, error) {
	resp, err := c.call(ctx, bridgeRequest{Op: "parse", Source: source, Filename: c.Filename})
	if err != nil {
		return nil, err
	}
	if resp.Descriptor == nil {
		return nil, errors.New("compiler returned no descriptor")
	}
	return resp.Descriptor, nil
}

// CompileScript implements Compiler. The descriptor's source is parsed again
// inside the compiler process.
func (c *NodeCompiler) CompileScript(ctx context.Context, d *Descriptor) (*ScriptBlock, error) {
	resp, err := c.call(ctx, bridgeRequest{Op: "compileScript", Source: d.Source, Filename: d.Filename})
	if err != nil {
		return nil, err
	}
	if resp.Script == nil {
		return nil, errors.New("compiler returned no script")
	}
	return resp.Script, nil
}

// Available reports whether node and the compiler package can be loaded.
func (c *NodeCompiler) Available(ctx context.Context) error {
	node, err := c.node()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, node, "-e", "require.resolve('@vue/compiler-sfc')")
	c.prepare(cmd)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("@vue/compiler-sfc is not resolvable: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (c *NodeCompiler) node() (string, error) {
	name := c.NodePath
	if name == "" {
		name = "node"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNodeUnavailable, name)
	}
	return path, nil
}

func (c *NodeCompiler) prepare(cmd *exec.Cmd) {
	cmd.Dir = c.Dir
	if c.NodeModules != "" {
		cmd.Env = append(os.Environ(), "NODE_PATH="+c.NodeModules)
	}
}

func (c *NodeCompiler) call(ctx context.Context, req bridgeRequest) (*bridgeResponse, error) {
	node, err := c.node()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, node, "-e", bridgeScript)
	c.prepare(cmd)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.Log.WithFields(map[string]any{"op": req.Op, "bytes": len(req.Source)}).Debug("running component compiler")
	runErr := cmd.Run()

	var resp bridgeResponse
	if stdout.Len() > 0 {
		if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
			return nil, fmt.Errorf("failed to decode compiler output: %w", err)
		}
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if runErr != nil {
		return nil, fmt.Errorf("compiler process failed: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}
	return &resp, nil
}
