// Package sfc rewrites single-file components that use the compact
// <script setup> form into the classic template plus component form.
package sfc

import (
	"context"
)

// Block is one top-level block of a single-file component.
type Block struct {
	Type    string         `json:"type"`
	Content string         `json:"content"`
	Lang    string         `json:"lang,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Loc     *Location      `json:"loc,omitempty"`
}

// Location is a source position reported by the compiler.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Descriptor is the parsed structure of a component.
type Descriptor struct {
	Filename     string  `json:"filename"`
	Source       string  `json:"source"`
	Template     *Block  `json:"template,omitempty"`
	Script       *Block  `json:"script,omitempty"`
	ScriptSetup  *Block  `json:"scriptSetup,omitempty"`
	Styles       []Block `json:"styles,omitempty"`
	CustomBlocks []Block `json:"customBlocks,omitempty"`
}

// ScriptBlock is the output of compiling a descriptor's script blocks.
type ScriptBlock struct {
	Content  string            `json:"content"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Setup    bool              `json:"setup"`
}

// Compiler parses components and compiles their scripts.
type Compiler interface {
	Parse(ctx context.Context, source string) (*Descriptor, error)
	CompileScript(ctx context.Context, d *Descriptor) (*ScriptBlock, error)
}

// Normalizer converts script-setup components with a Compiler.
type Normalizer struct {
	Compiler Compiler
}

// New returns a Normalizer backed by c.
func New(c Compiler) *Normalizer {
	return &Normalizer{Compiler: c}
}

// Normalize returns source unchanged when it has no script-setup block.
// Otherwise it returns the template content and the compiled component
// script. Style and custom blocks are not carried over. Compiler errors are
// returned as they are.
func (n *Normalizer) Normalize(ctx context.Context, source string) (string, error) {
	d, err := n.Compiler.Parse(ctx, source)
	if err != nil {
		return "", err
	}
	if !d.HasScriptSetup() {
		return source, nil
	}

	template := ""
	if d.Template != nil {
		template = d.Template.Content
	}

	script, err := n.Compiler.CompileScript(ctx, d)
	if err != nil {
		return "", err
	}

	return "<template>\n" + template + "\n</template>\n<script>\n" + script.Content + "\n</script>", nil
}

// HasScriptSetup reports whether d declares a script-setup block.
func (d *Descriptor) HasScriptSetup() bool {
	return d != nil && d.ScriptSetup != nil
}
