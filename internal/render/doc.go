// Package render turns page blocks into plain text lines.
//
// Rendering is a pure, order-preserving filter and map: each recognized block
// yields exactly one line, anything else is dropped without error. It needs no
// network access and works on synthetic blocks.
//
//	paragraph           T
//	heading_1           "## " + T
//	heading_2           "### " + T
//	quote               "> " + T
//	bulleted_list_item  "- " + T
//	callout             emoji + " " + T
//
// T is the concatenation of the block's span texts, without separator.
package render
