// Package orgunit finds or creates organizational units under the
// Organization root or another OU.
package orgunit

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	awsclient "tasnim.dev/orgctl/internal/aws"
	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	"tasnim.dev/orgctl/internal/constants"
	"tasnim.dev/orgctl/internal/provision"
)

// ouIDMinLen filters out strings that merely start with "ou-"; real OU IDs
// are ou-<root fragment>-<8+ chars>.
const ouIDMinLen = 10

// NotFoundError reports an OU name that matched nothing under its parent.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("OU named %q not found under the root", e.Name)
}

type CreateInput struct {
	Name       string
	ParentID   string
	ParentName string
	RoleName   string
}

// Result is the created or reused OU merged with the credentials that were
// provisioned to reach it.
type Result struct {
	provision.CredentialSet
	OUName   string `json:"ou_name"`
	OUID     string `json:"ou_id"`
	ParentID string `json:"parent_id"`
}

type Creator struct {
	Provision  func(ctx context.Context, roleName string) (*provision.CredentialSet, error)
	OrgsClient func(ctx context.Context, creds *provision.CredentialSet) (*awsorgs.Client, error)
	Log        zerolog.Logger
}

func NewCreator(svc *awsclient.ServiceClient, log zerolog.Logger) *Creator {
	p := provision.New(svc, log)
	return &Creator{
		Provision: p.Provision,
		OrgsClient: func(ctx context.Context, creds *provision.CredentialSet) (*awsorgs.Client, error) {
			return awsclient.NewAssumedOrgsClient(ctx, creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
		},
		Log: log,
	}
}

// AdminRole picks the role to provision: an explicit role always wins, a
// named parent implies "<parent>AdminRole", otherwise the default. A parent
// given only by ID falls back to the default since its name is unknown
// before a session exists.
func AdminRole(in CreateInput) string {
	if in.RoleName != "" {
		return in.RoleName
	}
	if in.ParentName != "" {
		return in.ParentName + "AdminRole"
	}
	return constants.DefaultRoleName
}

// Create finds or creates the named OU. Parent precedence: explicit ID,
// then name resolved among root-level OUs, then the root itself. A
// duplicate-name collision returns the existing OU instead of failing.
func (c *Creator) Create(ctx context.Context, in CreateInput) (*Result, error) {
	if in.Name == "" {
		return nil, &provision.ValidationError{Field: "ou_name"}
	}

	role := AdminRole(in)
	creds, err := c.Provision(ctx, role)
	if err != nil {
		return nil, err
	}
	client, err := c.OrgsClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	parentID := in.ParentID
	if parentID == "" {
		rootID, err := client.RootID(ctx)
		if err != nil {
			return nil, err
		}
		if in.ParentName != "" {
			parent, err := client.FindOUByName(ctx, rootID, in.ParentName)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, &NotFoundError{Name: in.ParentName}
			}
			parentID = parent.ID
		} else {
			parentID = rootID
		}
	}

	ou, err := client.CreateOU(ctx, parentID, in.Name)
	if err != nil {
		if !awsorgs.IsDuplicateOUName(err) {
			return nil, err
		}
		existing, lookupErr := client.FindOUByName(ctx, parentID, in.Name)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			return nil, err
		}
		c.Log.Debug().Str("ou_id", existing.ID).Str("name", in.Name).Msg("reusing existing OU")
		ou = existing
	}

	return &Result{
		CredentialSet: *creds,
		OUName:        in.Name,
		OUID:          ou.ID,
		ParentID:      parentID,
	}, nil
}

// IsOUID reports whether s looks like a literal OU identifier rather than
// a name.
func IsOUID(s string) bool {
	return strings.HasPrefix(s, "ou-") && len(s) > ouIDMinLen
}

// ResolveID turns an OU reference into an ID. Literal IDs short-circuit
// without any lookup; names are matched one level deep under the root.
func ResolveID(ctx context.Context, client *awsorgs.Client, ou string) (string, error) {
	if IsOUID(ou) {
		return ou, nil
	}

	rootID, err := client.RootID(ctx)
	if err != nil {
		return "", err
	}
	found, err := client.FindOUByName(ctx, rootID, ou)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", &NotFoundError{Name: ou}
	}
	return found.ID, nil
}
