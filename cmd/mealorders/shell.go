package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mealorders/pkg/controller"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/view"
)

const shellHelp = `Type an ingredient to order a meal or an order number to complete it.
  /mode random|choose   switch what a search does
  /pick N               order the Nth meal of the last choose search
  /list                 show orders
  /quit                 leave`

func newShellCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read inputs line by line; Enter submits",
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			sh := &shell{app: a, mode: controller.ParseMode(mode), w: cmd.OutOrStdout()}
			return sh.loop(cmd, cmd.InOrStdin())
		}),
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(controller.ModeRandom), "What a search does: random or choose")
	return cmd
}

type shell struct {
	app     *app
	mode    controller.Mode
	w       io.Writer
	choices []mealdb.Meal
}

func (s *shell) loop(cmd *cobra.Command, in io.Reader) error {
	ctx := cmd.Context()
	fmt.Fprintln(s.w, shellHelp)
	if err := s.app.showViews(ctx, s.w); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.w, "%s> ", s.mode)
		if !scanner.Scan() {
			fmt.Fprintln(s.w)
			return scanner.Err()
		}
		quit, err := s.handle(cmd, scanner.Text())
		if err != nil && !errors.Is(err, errReported) {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *shell) handle(cmd *cobra.Command, line string) (bool, error) {
	ctx := cmd.Context()
	fields := strings.Fields(line)
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		arg := strings.Join(fields[1:], " ")
		switch fields[0] {
		case "/quit", "/exit":
			return true, nil
		case "/mode":
			s.mode = controller.ParseMode(arg)
			return false, s.info(fmt.Sprintf("Mode: %s", s.mode))
		case "/list":
			return false, s.app.showViews(ctx, s.w)
		case "/pick":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 || n > len(s.choices) {
				return false, s.fail(fmt.Sprintf("Pick a number between 1 and %d.", len(s.choices)))
			}
			meal := s.choices[n-1]
			s.choices = nil
			out, err := s.app.ctrl.Pick(ctx, meal.Name, meal.Thumb)
			return false, s.app.report(ctx, s.w, out, err)
		default:
			return false, s.fail(fmt.Sprintf("Unknown command %s", fields[0]))
		}
	}

	out, err := s.app.ctrl.Submit(ctx, line, s.mode)
	if out.Path == controller.PathSearch && err == nil {
		s.choices = out.Choices
	}
	return false, s.app.report(ctx, s.w, out, err)
}

func (s *shell) info(text string) error {
	return view.RenderMessage(s.w, &controller.Message{Severity: controller.SeverityInfo, Text: text})
}

func (s *shell) fail(text string) error {
	return view.RenderMessage(s.w, &controller.Message{Severity: controller.SeverityError, Text: text})
}
