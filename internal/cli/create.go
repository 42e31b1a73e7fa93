package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
)

// NewCreateCommand creates the create command and its per-kind
// subcommands.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
	}

	cmd.AddCommand(newCreateLocationCommand(rootOpts))
	cmd.AddCommand(newCreatePersonCommand(rootOpts))
	cmd.AddCommand(newCreateOrganizationCommand(rootOpts))
	cmd.AddCommand(newCreateEmployeeCommand(rootOpts))
	cmd.AddCommand(newCreateJobCommand(rootOpts))

	return cmd
}

// contactFlags are shared by the person and employee subcommands.
type contactFlags struct {
	contacts []string
	exported []string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.contacts, "contact", nil,
		"contact as label=kind:value, kind one of address|email|phone (repeatable)")
	cmd.Flags().StringSliceVar(&f.exported, "export", nil, "labels of contacts to print on exported jobs")
}

// parse turns "home=address:<location-id>", "work=email:me@example.com" or
// "cell=phone:555-0100" into contacts.
func (f *contactFlags) parse() (map[string]entity.Contact, error) {
	if len(f.contacts) == 0 {
		return nil, nil
	}

	contacts := make(map[string]entity.Contact, len(f.contacts))
	for _, spec := range f.contacts {
		label, rest, ok := strings.Cut(spec, "=")
		if !ok || label == "" {
			return nil, fmt.Errorf("contact %q: want label=kind:value", spec)
		}
		kind, value, ok := strings.Cut(rest, ":")
		if !ok || value == "" {
			return nil, fmt.Errorf("contact %q: want label=kind:value", spec)
		}
		export := slices.Contains(f.exported, label)

		switch entity.ContactKind(kind) {
		case entity.ContactAddress:
			id, err := parseID("location", value)
			if err != nil {
				return nil, fmt.Errorf("contact %q: %w", spec, err)
			}
			contacts[label] = entity.Address(id, export)
		case entity.ContactEmail:
			contacts[label] = entity.Email(value, export)
		case entity.ContactPhone:
			contacts[label] = entity.Phone(value, export)
		default:
			return nil, fmt.Errorf("contact %q: unknown kind %q", spec, kind)
		}
	}

	for _, label := range f.exported {
		if _, ok := contacts[label]; !ok {
			return nil, fmt.Errorf("--export %q: no such contact", label)
		}
	}
	return contacts, nil
}

func newCreateLocationCommand(rootOpts *RootOptions) *cobra.Command {
	var outer string

	cmd := &cobra.Command{
		Use:   "location <name>",
		Short: "Create a location, optionally inside another",
		Example: `  clerk create location Earth
  clerk create location USA --outer 0190f0a8-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			if outer == "" {
				l, err := s.repo.CreateLocation(ctx, args[0])
				if err != nil {
					return s.fail("", err)
				}
				return s.out.Success(l)
			}

			outerID, err := parseID("outer location", outer)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			o, err := s.repo.Location(ctx, outerID)
			if err != nil {
				return s.fail("", err)
			}
			l, err := s.repo.CreateInnerLocation(ctx, o, args[0])
			if err != nil {
				return s.fail("", err)
			}
			return s.out.Success(l)
		},
	}

	cmd.Flags().StringVar(&outer, "outer", "", "id of the location this one is inside")
	return cmd
}

func newCreatePersonCommand(rootOpts *RootOptions) *cobra.Command {
	var contacts contactFlags

	cmd := &cobra.Command{
		Use:           "person <name>",
		Short:         "Create a person",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()

			info, err := contacts.parse()
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			p, err := s.repo.CreatePerson(cmd.Context(), args[0], info)
			if err != nil {
				return s.fail("", err)
			}
			return s.out.Success(p)
		},
	}

	contacts.register(cmd)
	return cmd
}

func newCreateOrganizationCommand(rootOpts *RootOptions) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:           "organization <name>",
		Aliases:       []string{"org"},
		Short:         "Create an organization at a location",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			id, err := parseID("location", location)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			l, err := s.repo.Location(ctx, id)
			if err != nil {
				return s.fail("", err)
			}
			o, err := s.repo.CreateOrganization(ctx, l, args[0])
			if err != nil {
				return s.fail("", err)
			}
			return s.out.Success(o)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "id of the organization's location (required)")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func newCreateEmployeeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		organization, person, title, status string
		contacts                            contactFlags
	)

	cmd := &cobra.Command{
		Use:           "employee",
		Short:         "Employ a person at an organization",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			orgID, err := parseID("organization", organization)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			personID, err := parseID("person", person)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			st := entity.EmployeeStatus(status)
			if !st.Valid() {
				return s.fail(ErrCodeInvalidArgs, fmt.Errorf("unknown employee status %q", status))
			}
			info, err := contacts.parse()
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}

			o, err := s.repo.Organization(ctx, orgID)
			if err != nil {
				return s.fail("", err)
			}
			p, err := s.repo.Person(ctx, personID)
			if err != nil {
				return s.fail("", err)
			}
			e, err := s.repo.CreateEmployee(ctx, o, p, title, st, info)
			if err != nil {
				return s.fail("", err)
			}
			return s.out.Success(e)
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "", "id of the employer (required)")
	cmd.Flags().StringVar(&person, "person", "", "id of the person employed (required)")
	cmd.Flags().StringVar(&title, "title", "", "job title (required)")
	cmd.Flags().StringVar(&status, "status", string(entity.StatusEmployed), "employed|not_employed|representative")
	_ = cmd.MarkFlagRequired("organization")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("title")
	contacts.register(cmd)
	return cmd
}

func newCreateJobCommand(rootOpts *RootOptions) *cobra.Command {
	var client, rate, objectives, opened string

	cmd := &cobra.Command{
		Use:   "job",
		Short: "Open a job for a client",
		Example: `  clerk create job --client 0190f0a8-... --rate 20.00 --objectives "- Fix the deck"
  clerk create job --client 0190f0a8-... --rate "75 EUR" --opened 2024-03-01T09:00:00Z`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := cmd.Context()

			clientID, err := parseID("client", client)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			// a bare number is in the default currency
			if len(strings.Fields(rate)) == 1 {
				rate += " " + s.cfg.Invoices.DefaultCurrency
			}
			hourly, err := entity.ParseMoney(rate)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}
			dateOpen := s.now()
			if opened != "" {
				if dateOpen, err = time.Parse(time.RFC3339, opened); err != nil {
					return s.fail(ErrCodeInvalidArgs, fmt.Errorf("--opened: %w", err))
				}
			}

			o, err := s.repo.Organization(ctx, clientID)
			if err != nil {
				return s.fail("", err)
			}
			j, err := s.repo.CreateJob(ctx, o, dateOpen, hourly, objectives)
			if err != nil {
				return s.fail("", err)
			}
			return s.out.Success(j)
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "id of the client organization (required)")
	cmd.Flags().StringVar(&rate, "rate", "", `hourly rate, e.g. "20.00 USD" or "20" (required)`)
	cmd.Flags().StringVar(&objectives, "objectives", "", "what the job should accomplish (markdown)")
	cmd.Flags().StringVar(&opened, "opened", "", "RFC 3339 open time (default now)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}
