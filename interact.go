package console

import (
	"context"
	"os"
	"reflect"
	"strings"
)

// Interactor is implemented by command owners and by mapped-input struct types that ask for
// missing values before the input is validated.
type Interactor interface {
	Interact(ctx context.Context, in Input, out Output) error
}

type interaction func(ctx context.Context, in Input, out Output, q *QuestionHelper) error

// IsInteractive reports whether the command has anything to ask.
func (c *InvokableCommand) IsInteractive() bool {
	c.discoverInteractions()
	return len(c.interactions) > 0
}

// Interact runs every discovered interaction in order. An Ask marker only prompts when its
// argument has no value yet, so calling Interact again asks nothing new. Answers are read
// through the helper set with [InvokableCommand.SetQuestionHelper], or from os.Stdin.
func (c *InvokableCommand) Interact(ctx context.Context, in Input, out Output) error {
	q := c.questions
	if q == nil {
		q = NewQuestionHelper(os.Stdin)
	}
	return c.interact(ctx, in, out, q)
}

func (c *InvokableCommand) interact(ctx context.Context, in Input, out Output, q *QuestionHelper) error {
	c.discoverInteractions()
	for _, fn := range c.interactions {
		if err := fn(ctx, in, out, q); err != nil {
			return err
		}
	}
	return nil
}

func (c *InvokableCommand) discoverInteractions() {
	c.interactOnce.Do(func() {
		for _, m := range c.params {
			if isContextType(m.Type()) {
				continue
			}
			c.interactions = append(c.interactions, memberInteractions(m)...)
		}
		if owner, ok := c.owner.(Interactor); ok {
			c.interactions = append(c.interactions, interactorFunc(owner))
		}
	})
}

func memberInteractions(m Member) []interaction {
	var out []interaction
	if ask, ok := MarkerOf[Ask](m); ok {
		if name, ok := argumentName(m); ok {
			out = append(out, askArgument(name, ask, m))
		}
	}
	mi, ok := MarkerOf[MapInput](m)
	if !ok {
		return out
	}
	for _, f := range mi.Fields {
		out = append(out, memberInteractions(f)...)
	}
	base := indirect(m.Type())
	if reflect.PointerTo(base).Implements(reflect.TypeFor[Interactor]()) {
		out = append(out, func(ctx context.Context, in Input, out Output, _ *QuestionHelper) error {
			return reflect.New(base).Interface().(Interactor).Interact(ctx, in, out)
		})
	}
	return out
}

func askArgument(name string, ask Ask, m Member) interaction {
	return func(ctx context.Context, in Input, out Output, q *QuestionHelper) error {
		if v := in.Argument(name); !isEmptyValue(v) && v != "" {
			return nil
		}
		answer, err := q.Ask(ctx, out, Question{
			Text:    ask.Question,
			Default: ask.Default,
			Hidden:  ask.Hidden,
			Choices: ask.Choices,
		})
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		if m.IsVariadic() || isListType(m.Type()) {
			in.SetArgument(name, strings.Fields(answer))
			return nil
		}
		in.SetArgument(name, answer)
		return nil
	}
}

func interactorFunc(i Interactor) interaction {
	return func(ctx context.Context, in Input, out Output, _ *QuestionHelper) error {
		return i.Interact(ctx, in, out)
	}
}
