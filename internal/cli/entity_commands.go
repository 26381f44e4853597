package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// ProjectsCommand handles the projects command listing the entity catalog
type ProjectsCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewProjectsCommand creates a new projects command handler
func NewProjectsCommand(t tracker.Tracker) *ProjectsCommand {
	return &ProjectsCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the projects command
func (c *ProjectsCommand) Execute(ctx context.Context, args []string) error {
	entities, err := c.tracker.ListEntities(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entities", err)
	}

	if len(entities) == 0 {
		fmt.Println("No entities yet")
		return nil
	}

	for _, entity := range entities {
		kind := ""
		if entity.IsBackground() {
			kind = " (background)"
		}
		tags := ""
		if len(entity.Tags) > 0 {
			tags = "  [" + strings.Join(entity.Tags, ", ") + "]"
		}
		fmt.Printf("  [P%d %s] %s%s%s\n",
			entity.Priority, domain.PriorityLabel(entity.Priority), entity.Name, kind, tags)
	}
	return nil
}

// PriorityCommand handles the priority command
type PriorityCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewPriorityCommand creates a new priority command handler
func NewPriorityCommand(t tracker.Tracker) *PriorityCommand {
	return &PriorityCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the priority command: tt priority <name> <1-5>
func (c *PriorityCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewValidationError("usage: tt priority <name> <1-5>", nil)
	}
	priority, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return c.errorHandler.HandleSimple(errors.NewParseError(args[len(args)-1], "priority must be a number from 1 to 5"))
	}
	name := strings.Join(args[:len(args)-1], " ")

	entity, err := c.tracker.SetPriority(ctx, name, priority)
	if err != nil {
		return c.errorHandler.Handle("set priority", err)
	}
	fmt.Printf("%s is now P%d (%s)\n", entity.Name, entity.Priority, domain.PriorityLabel(entity.Priority))
	return nil
}

// RenameCommand handles the rename command
type RenameCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(t tracker.Tracker) *RenameCommand {
	return &RenameCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the rename command: tt rename <name> <new name>
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewValidationError("usage: tt rename <name> <new-name>", nil)
	}

	entity, err := c.tracker.RenameEntity(ctx, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("rename entity", err)
	}
	fmt.Printf("Renamed to %s\n", entity.Name)
	return nil
}

// TagCommand handles the tag and untag commands
type TagCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	remove       bool
}

// NewTagCommand creates a new tag command handler
func NewTagCommand(t tracker.Tracker) *TagCommand {
	return &TagCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// NewUntagCommand creates a tag handler that removes tags
func NewUntagCommand(t tracker.Tracker) *TagCommand {
	return &TagCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
		remove:       true,
	}
}

// Execute runs the tag command: tt tag <name> <tag>
func (c *TagCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		if c.remove {
			return errors.NewValidationError("usage: tt untag <name> <tag>", nil)
		}
		return errors.NewValidationError("usage: tt tag <name> <tag>", nil)
	}
	tag := args[len(args)-1]
	name := strings.Join(args[:len(args)-1], " ")

	if c.remove {
		removed, err := c.tracker.UntagEntity(ctx, name, tag)
		if err != nil {
			return c.errorHandler.Handle("untag entity", err)
		}
		if removed {
			fmt.Printf("Removed tag %s from %s\n", tag, name)
		} else {
			fmt.Printf("%s does not carry tag %s\n", name, tag)
		}
		return nil
	}

	added, err := c.tracker.TagEntity(ctx, name, tag)
	if err != nil {
		return c.errorHandler.Handle("tag entity", err)
	}
	if added {
		fmt.Printf("Tagged %s with %s\n", name, tag)
	} else {
		fmt.Printf("%s already carries tag %s\n", name, tag)
	}
	return nil
}

// TagsCommand handles the tags command listing all known tags
type TagsCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
}

// NewTagsCommand creates a new tags command handler
func NewTagsCommand(t tracker.Tracker) *TagsCommand {
	return &TagsCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the tags command
func (c *TagsCommand) Execute(ctx context.Context, args []string) error {
	tags, err := c.tracker.ListTags(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tags", err)
	}

	if len(tags) == 0 {
		fmt.Println("No tags yet")
		return nil
	}
	for _, tag := range tags {
		fmt.Println("  " + tag)
	}
	return nil
}

// RemoveCommand handles the remove command deleting an entity
type RemoveCommand struct {
	tracker      tracker.Tracker
	errorHandler *ErrorHandler
	cascade      bool
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(t tracker.Tracker) *RemoveCommand {
	return &RemoveCommand{
		tracker:      t,
		errorHandler: NewErrorHandler(),
	}
}

// SetCascade allows deleting the entity's recorded sessions along with it
func (c *RemoveCommand) SetCascade(cascade bool) {
	c.cascade = cascade
}

// Execute runs the remove command: tt remove <name>
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewValidationError("usage: tt remove <name>", nil)
	}
	name := strings.Join(args, " ")

	if err := c.tracker.DeleteEntity(ctx, name, c.cascade); err != nil {
		return c.errorHandler.Handle("remove entity", err)
	}
	fmt.Printf("Removed %s\n", name)
	return nil
}
