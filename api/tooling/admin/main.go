// Admin CLI for operational tasks: RSA key generation for the JWT keystore
// and seeding users, workspaces, and memberships.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/panelkit/panelkit/business/domain/userbus"
	"github.com/panelkit/panelkit/business/domain/userbus/stores/usercache"
	"github.com/panelkit/panelkit/business/domain/userbus/stores/userdb"
	"github.com/panelkit/panelkit/business/domain/workspacebus"
	"github.com/panelkit/panelkit/business/domain/workspacebus/stores/workspacedb"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/password"
	"github.com/panelkit/panelkit/business/types/role"
	"github.com/panelkit/panelkit/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"panelkit"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: keygen, create-user, create-workspace, add-member")
		return nil
	}

	// keygen has no database dependency.
	if os.Args[1] == "keygen" {
		return runKeygen(os.Args[2:])
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
	workspaceBus := workspacebus.NewCore(workspacedb.NewStore(log, db))

	switch os.Args[1] {
	case "create-user":
		return runCreateUser(ctx, userBus, os.Args[2:])
	case "create-workspace":
		return runCreateWorkspace(ctx, workspaceBus, os.Args[2:])
	case "add-member":
		return runAddMember(ctx, workspaceBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runKeygen creates an RSA private key PEM named after a fresh kid so the
// keystore can pick it up by file name.
func runKeygen(args []string) error {
	cmd := flag.NewFlagSet("keygen", flag.ExitOnError)
	folder := cmd.String("folder", "foundation/zarf/keys", "Destination folder for the PEM file")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(*folder, 0o755); err != nil {
		return fmt.Errorf("creating key folder: %w", err)
	}

	kid := uuid.NewString()
	fileName := filepath.Join(*folder, kid+".pem")

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: mustMarshalPKCS8(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	fmt.Printf("\nSUCCESS: Key written!\nKID: %s\nFile: %s\n", kid, fileName)
	return nil
}

func mustMarshalPKCS8(privateKey *rsa.PrivateKey) []byte {
	data, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		panic(err)
	}
	return data
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	orgIDStr := cmd.String("org-id", "", "Organization UUID (Required)")
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("role", "MEMBER", "User role (ADMIN, MEMBER, VIEWER)")
	cmd.Parse(args)

	if *orgIDStr == "" || *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	orgID, err := uuid.Parse(*orgIDStr)
	if err != nil {
		return fmt.Errorf("invalid org uuid: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	newUser := userbus.NewUser{
		OrgID:    orgID,
		Name:     n,
		Email:    mail.Address{Address: *emailStr},
		Password: p,
		Role:     r,
	}

	usr, err := ub.Create(ctx, newUser)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

func runCreateWorkspace(ctx context.Context, wb *workspacebus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-workspace", flag.ExitOnError)
	orgIDStr := cmd.String("org-id", "", "Organization UUID (Required)")
	nameStr := cmd.String("name", "", "Workspace name (Required)")
	cmd.Parse(args)

	if *orgIDStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	orgID, err := uuid.Parse(*orgIDStr)
	if err != nil {
		return fmt.Errorf("invalid org uuid: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	wks, err := wb.Create(ctx, workspacebus.NewWorkspace{
		OrgID: orgID,
		Name:  n,
	})
	if err != nil {
		return fmt.Errorf("create workspace failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Workspace created!\nID: %s\nOrg: %s\nName: %s\n", wks.ID, wks.OrgID, wks.Name)
	return nil
}

func runAddMember(ctx context.Context, wb *workspacebus.Core, args []string) error {
	cmd := flag.NewFlagSet("add-member", flag.ExitOnError)
	workspaceIDStr := cmd.String("workspace-id", "", "Workspace UUID (Required)")
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	roleStr := cmd.String("role", "MEMBER", "Member role (OWNER, MEMBER)")
	cmd.Parse(args)

	if *workspaceIDStr == "" || *userIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	workspaceID, err := uuid.Parse(*workspaceIDStr)
	if err != nil {
		return fmt.Errorf("invalid workspace uuid: %w", err)
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	mr, err := workspacebus.ParseMemberRole(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid member role: %w", err)
	}

	if _, err := wb.AddMember(ctx, workspaceID, userID, mr); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	fmt.Printf("\nSUCCESS: User %s added to Workspace %s as %s\n", userID, workspaceID, mr)
	return nil
}
