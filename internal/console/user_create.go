package console

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/layerkit/layerkit/internal/model"
)

// UserPersister is the slice of the user facade the command needs.
type UserPersister interface {
	PersistUser(ctx context.Context, u *model.User) (*model.User, error)
}

// UserCreateCommand creates a user, or updates the one with the same email.
type UserCreateCommand struct {
	users UserPersister
	in    *bufio.Reader
	out   io.Writer
}

// NewUserCreateCommand reads the email from in when it is not passed as a flag.
func NewUserCreateCommand(users UserPersister, in io.Reader, out io.Writer) *UserCreateCommand {
	return &UserCreateCommand{users: users, in: bufio.NewReader(in), out: out}
}

func (c *UserCreateCommand) Name() string        { return "user:create" }
func (c *UserCreateCommand) Description() string { return "Creates or updates a user" }

func (c *UserCreateCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(c.out)
	email := fs.String("email", "", "email of the user; prompted for when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		answer, err := c.ask("Email: ")
		if err != nil {
			return err
		}
		*email = answer
	}

	fmt.Fprintln(c.out, *email)

	if _, err := c.users.PersistUser(ctx, &model.User{Email: *email}); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	fmt.Fprintln(c.out, "User created successfully")
	return nil
}

// ask writes the prompt and returns the next input line without its line ending.
func (c *UserCreateCommand) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
