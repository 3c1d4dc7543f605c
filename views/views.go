// Package views renders address book content for people to read.
package views

import "github.com/Koster99/personal-asistant/datastores"

// Renderer presents records and messages. Implementations must not alter
// what they are given.
type Renderer interface {
	RenderRecord(r *datastores.Record)
	// RenderResults renders each record, or a "no results" message if there is none.
	RenderResults(rs []*datastores.Record)
	RenderMessage(msg string)
	RenderCommandList(cmds []Command)
}

// Command describes one command of the driving program for help listings.
type Command struct {
	Name string
	Help string
}

// NoResults is rendered in place of an empty result list.
const NoResults = "No results found."

// unknown is displayed for unset fields.
const unknown = "unknown"
