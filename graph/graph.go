// Package graph renders machine configurations as Graphviz DOT or
// Mermaid state diagrams.
package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/machinic/fsm"
)

// UmlDotGraph renders info as a Graphviz DOT digraph in basic UML style.
func UmlDotGraph[S, T comparable](info fsm.MachineInfo[S, T]) string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("compound=true;\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")

	for _, id := range info.States {
		name := EscapeLabel(fmt.Sprintf("%v", id))
		sb.WriteString(fmt.Sprintf("\"%s\" [label=\"%s\"];\n", name, name))
	}

	for _, ti := range info.Transitions {
		sb.WriteString(formatDotTransition(ti))
	}

	if info.HasInitial {
		sb.WriteString("\ninit [label=\"\", shape=point];\n")
		sb.WriteString(fmt.Sprintf("init -> \"%s\"[style = \"solid\"]\n",
			EscapeLabel(fmt.Sprintf("%v", info.Initial))))
	}

	sb.WriteString("}")
	return sb.String()
}

func formatDotTransition[S, T comparable](ti fsm.TransitionInfo[S, T]) string {
	return fmt.Sprintf("\"%s\" -> \"%s\" [label=\"%s\"];\n",
		EscapeLabel(fmt.Sprintf("%v", ti.Transition.From)),
		EscapeLabel(fmt.Sprintf("%v", ti.Transition.To)),
		EscapeLabel(edgeLabel(ti)))
}

// edgeLabel annotates the trigger with the number of guards gating the
// transition, when any.
func edgeLabel[S, T comparable](ti fsm.TransitionInfo[S, T]) string {
	label := fmt.Sprintf("%v", ti.Transition.Trigger)
	if ti.GuardCount == 1 {
		label += " [guarded]"
	} else if ti.GuardCount > 1 {
		label += fmt.Sprintf(" [%d guards]", ti.GuardCount)
	}
	return label
}

// EscapeLabel escapes quotes and backslashes for DOT labels.
func EscapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	return strings.ReplaceAll(label, "\"", "\\\"")
}

// MermaidGraphDirection specifies the direction of the Mermaid graph.
type MermaidGraphDirection int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom MermaidGraphDirection = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

func (d MermaidGraphDirection) code() string {
	switch d {
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// MermaidGraph renders info as a Mermaid stateDiagram-v2.
func MermaidGraph[S, T comparable](info fsm.MachineInfo[S, T], direction ...MermaidGraphDirection) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")

	if len(direction) > 0 {
		sb.WriteString(fmt.Sprintf("\n\tdirection %s", direction[0].code()))
	}

	// Mermaid node names must be identifier-like; alias sanitized names
	// back to their display form.
	for _, id := range info.States {
		name := fmt.Sprintf("%v", id)
		if sanitized := SanitizeName(name); sanitized != name {
			sb.WriteString(fmt.Sprintf("\n\t%s : %s", sanitized, name))
		}
	}

	if info.HasInitial {
		sb.WriteString(fmt.Sprintf("\n[*] --> %s", SanitizeName(fmt.Sprintf("%v", info.Initial))))
	}

	for _, ti := range info.Transitions {
		sb.WriteString(fmt.Sprintf("\n\t%s --> %s : %s",
			SanitizeName(fmt.Sprintf("%v", ti.Transition.From)),
			SanitizeName(fmt.Sprintf("%v", ti.Transition.To)),
			edgeLabel(ti)))
	}

	return sb.String()
}

// SanitizeName reduces a display name to a Mermaid-safe identifier.
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
