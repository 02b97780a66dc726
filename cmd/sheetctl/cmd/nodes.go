package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacentio/sheetstore/sheet"
)

func (c *cli) requireTopic(topicID string) error {
	if _, ok := c.store.Tree().FindTopic(topicID); !ok {
		return fmt.Errorf("topic %q not found", topicID)
	}
	return nil
}

func (c *cli) requireSubTopic(topicID, subTopicID string) error {
	if _, ok := c.store.Tree().FindSubTopic(topicID, subTopicID); !ok {
		return fmt.Errorf("subtopic %q not found in topic %q", subTopicID, topicID)
	}
	return nil
}

func (c *cli) requireQuestion(topicID, subTopicID, questionID string) error {
	if _, ok := c.store.Tree().FindQuestion(topicID, subTopicID, questionID); !ok {
		return fmt.Errorf("question %q not found in subtopic %q", questionID, subTopicID)
	}
	return nil
}

func (c *cli) printCreated(cmd *cobra.Command, kind, id string, v any) error {
	if c.output == "json" {
		return printJSON(cmd.OutOrStdout(), v)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s %s\n", kind, id)
	return nil
}

// --- Topics ---

func (c *cli) topicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage topics",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <title>",
			Short: "Append a topic with an empty General subtopic",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				topic := c.store.AddTopic(cmd.Context(), args[0])
				return c.printCreated(cmd, "topic", topic.ID, topic)
			},
		},
		&cobra.Command{
			Use:   "rename <topic-id> <title>",
			Short: "Rename a topic",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireTopic(args[0]); err != nil {
					return err
				}
				c.store.UpdateTopic(cmd.Context(), args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <topic-id>",
			Short: "Delete a topic and everything under it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireTopic(args[0]); err != nil {
					return err
				}
				c.store.DeleteTopic(cmd.Context(), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <from> <to>",
			Short: "Move the topic at position from to position to",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				from, to, err := parseIndices(args[0], args[1])
				if err != nil {
					return err
				}
				return c.store.ReorderTopics(cmd.Context(), from, to)
			},
		},
	)
	return cmd
}

// --- SubTopics ---

func (c *cli) subTopicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtopic",
		Aliases: []string{"sub"},
		Short:   "Manage subtopics",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <topic-id> <title>",
			Short: "Append a subtopic to a topic",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, ok := c.store.AddSubTopic(cmd.Context(), args[0], args[1])
				if !ok {
					return fmt.Errorf("topic %q not found", args[0])
				}
				return c.printCreated(cmd, "subtopic", st.ID, st)
			},
		},
		&cobra.Command{
			Use:   "rename <topic-id> <subtopic-id> <title>",
			Short: "Rename a subtopic",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSubTopic(args[0], args[1]); err != nil {
					return err
				}
				c.store.UpdateSubTopic(cmd.Context(), args[0], args[1], args[2])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <topic-id> <subtopic-id>",
			Short: "Delete a subtopic and its questions",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSubTopic(args[0], args[1]); err != nil {
					return err
				}
				c.store.DeleteSubTopic(cmd.Context(), args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <topic-id> <from> <to>",
			Short: "Reorder the subtopics of a topic",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireTopic(args[0]); err != nil {
					return err
				}
				from, to, err := parseIndices(args[1], args[2])
				if err != nil {
					return err
				}
				return c.store.ReorderSubTopics(cmd.Context(), args[0], from, to)
			},
		},
	)
	return cmd
}

// --- Questions ---

// questionFlags are the editable question fields.
type questionFlags struct {
	title      string
	link       string
	difficulty string
	platform   string
	solved     bool
}

func (f *questionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "question title")
	cmd.Flags().StringVar(&f.link, "link", "", "problem URL")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Easy, Medium or Hard")
	cmd.Flags().StringVar(&f.platform, "platform", "", "platform name, e.g. leetcode")
	cmd.Flags().BoolVar(&f.solved, "solved", false, "mark as solved")
}

func parseDifficultyFlag(s string) (sheet.Difficulty, error) {
	d, ok := sheet.ParseDifficulty(s)
	if !ok {
		return "", fmt.Errorf("invalid difficulty %q (want Easy, Medium or Hard)", s)
	}
	return d, nil
}

func (f *questionFlags) input() (sheet.QuestionInput, error) {
	in := sheet.QuestionInput{
		Title:    f.title,
		Link:     f.link,
		Platform: f.platform,
		Solved:   f.solved,
	}
	if f.difficulty != "" {
		d, err := parseDifficultyFlag(f.difficulty)
		if err != nil {
			return in, err
		}
		in.Difficulty = d
	}
	return in, nil
}

// patch builds a patch from the flags the user actually set.
func (f *questionFlags) patch(cmd *cobra.Command) (sheet.QuestionPatch, error) {
	var p sheet.QuestionPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = &f.title
	}
	if changed("link") {
		p.Link = &f.link
	}
	if changed("platform") {
		p.Platform = &f.platform
	}
	if changed("solved") {
		p.Solved = &f.solved
	}
	if changed("difficulty") {
		d, err := parseDifficultyFlag(f.difficulty)
		if err != nil {
			return p, err
		}
		p.Difficulty = &d
	}
	return p, nil
}

func (c *cli) questionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "question",
		Aliases: []string{"q"},
		Short:   "Manage questions",
	}

	var addFlags questionFlags
	add := &cobra.Command{
		Use:   "add <topic-id> <subtopic-id>",
		Short: "Append a question to a subtopic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := addFlags.input()
			if err != nil {
				return err
			}
			q, ok := c.store.AddQuestion(cmd.Context(), args[0], args[1], in)
			if !ok {
				return fmt.Errorf("subtopic %q not found in topic %q", args[1], args[0])
			}
			return c.printCreated(cmd, "question", q.ID, q)
		},
	}
	addFlags.register(add)

	var editFlags questionFlags
	edit := &cobra.Command{
		Use:   "edit <topic-id> <subtopic-id> <question-id>",
		Short: "Update the given fields of a question",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireQuestion(args[0], args[1], args[2]); err != nil {
				return err
			}
			p, err := editFlags.patch(cmd)
			if err != nil {
				return err
			}
			c.store.UpdateQuestion(cmd.Context(), args[0], args[1], args[2], p)
			return nil
		},
	}
	editFlags.register(edit)

	cmd.AddCommand(
		add,
		edit,
		&cobra.Command{
			Use:   "rm <topic-id> <subtopic-id> <question-id>",
			Short: "Delete a question",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireQuestion(args[0], args[1], args[2]); err != nil {
					return err
				}
				c.store.DeleteQuestion(cmd.Context(), args[0], args[1], args[2])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <topic-id> <subtopic-id> <question-id>",
			Short: "Flip the solved flag of a question",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				solved, ok := c.store.ToggleQuestionSolved(cmd.Context(), args[0], args[1], args[2])
				if !ok {
					return fmt.Errorf("question %q not found in subtopic %q", args[2], args[1])
				}
				if c.output == "json" {
					return printJSON(cmd.OutOrStdout(), map[string]bool{"solved": solved})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "solved: %t\n", solved)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <topic-id> <subtopic-id> <from> <to>",
			Short: "Reorder the questions of a subtopic",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSubTopic(args[0], args[1]); err != nil {
					return err
				}
				from, to, err := parseIndices(args[2], args[3])
				if err != nil {
					return err
				}
				return c.store.ReorderQuestions(cmd.Context(), args[0], args[1], from, to)
			},
		},
	)
	return cmd
}
