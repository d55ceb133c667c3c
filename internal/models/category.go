// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the category forest. Siblings are ordered by
// DisplayOrder; a nil ParentID marks a root.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ColorHex     string     `json:"color_hex"`
	DisplayOrder int        `json:"display_order"`
	ParentID     *uuid.UUID `json:"parent_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	IsDeleted    bool       `json:"-"`

	// Virtual fields populated by the hierarchy engine.
	ChildIDs []uuid.UUID `json:"child_ids,omitempty"`
	Children []Category  `json:"children,omitempty"`
	Depth    int         `json:"depth"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
