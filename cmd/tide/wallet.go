package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vulpemventures/tide/internal/core/application"
	"github.com/vulpemventures/tide/pkg/wallet/mnemonic"
)

var (
	identifier    string
	passphrase    string
	primaryWords  string
	backupXpub    string
	keyIndex      uint32
	noStoreWords  bool
	upgradeTarget uint32

	walletGenSeedCmd = &cobra.Command{
		Use:   "genseed",
		Short: "generate a random mnemonic",
		Long: "this command lets you generate a new random mnemonic to " +
			"create a new wallet from scratch",
		RunE: walletGenSeed,
	}
	walletCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "create a brand new wallet",
		Long: "this command lets you register a new multisig wallet with the " +
			"co-signing service, with the given mnemonic (or let me create " +
			"one for you) protected by your choosen passphrase",
		RunE: walletCreate,
	}
	walletGetCmd = &cobra.Command{
		Use:   "get",
		Short: "fetch an existing wallet",
		Long: "this command fetches the server-side record of an existing " +
			"wallet and prints its public material, without unlocking it",
		RunE: walletGet,
	}
	walletUnlockCmd = &cobra.Command{
		Use:   "unlock",
		Short: "unlock an existing wallet",
		Long: "this command initializes an existing wallet and unlocks it " +
			"with your passphrase, verifying the ownership checksum",
		RunE: walletUnlock,
	}
	walletUpgradeCmd = &cobra.Command{
		Use:   "upgrade",
		Short: "rotate the wallet cosigner key",
		Long: "this command asks the co-signing service to rotate the wallet " +
			"to a new cosigner key index",
		RunE: walletUpgrade,
	}
	walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "interact with tide wallets",
		Long: "this command lets you create, fetch, unlock or upgrade a " +
			"multisig wallet held with the co-signing service",
	}
)

func init() {
	walletCreateCmd.Flags().StringVar(
		&identifier, "id", "", "unique wallet identifier",
	)
	walletCreateCmd.Flags().StringVar(
		&passphrase, "passphrase", "", "passphrase protecting the primary seed",
	)
	walletCreateCmd.Flags().StringVar(
		&primaryWords, "mnemonic", "", "space separated word list as primary seed",
	)
	walletCreateCmd.Flags().StringVar(
		&backupXpub, "backup-xpub", "", "extended public key for the backup role",
	)
	walletCreateCmd.Flags().Uint32Var(
		&keyIndex, "key-index", 0, "cosigner key index to register the wallet at",
	)
	walletCreateCmd.Flags().BoolVar(
		&noStoreWords, "no-store-mnemonic", false,
		"do not store the generated mnemonic with the service",
	)
	walletCreateCmd.MarkFlagRequired("id")

	walletGetCmd.Flags().StringVar(&identifier, "id", "", "unique wallet identifier")
	walletGetCmd.MarkFlagRequired("id")

	walletUnlockCmd.Flags().StringVar(&identifier, "id", "", "unique wallet identifier")
	walletUnlockCmd.Flags().StringVar(
		&passphrase, "passphrase", "", "passphrase protecting the primary seed",
	)
	walletUnlockCmd.Flags().StringVar(
		&primaryWords, "mnemonic", "", "space separated word list as primary seed",
	)
	walletUnlockCmd.MarkFlagRequired("id")

	walletUpgradeCmd.Flags().StringVar(&identifier, "id", "", "unique wallet identifier")
	walletUpgradeCmd.Flags().Uint32Var(
		&upgradeTarget, "key-index", 0, "cosigner key index to rotate to",
	)
	walletUpgradeCmd.MarkFlagRequired("id")
	walletUpgradeCmd.MarkFlagRequired("key-index")

	walletCmd.AddCommand(
		walletGenSeedCmd, walletCreateCmd, walletGetCmd, walletUnlockCmd,
		walletUpgradeCmd,
	)
}

func walletGenSeed(cmd *cobra.Command, args []string) error {
	svc, err := getBootstrapService()
	if err != nil {
		return err
	}

	words, err := svc.GenerateMnemonic(context.Background())
	if err != nil {
		printErr(err)
		return nil
	}

	fmt.Println(mnemonic.ToString(words))
	return nil
}

func walletCreate(cmd *cobra.Command, args []string) error {
	svc, err := getBootstrapService()
	if err != nil {
		return err
	}

	if len(passphrase) <= 0 {
		passphrase, err = readPassphrase("wallet passphrase")
		if err != nil {
			return err
		}
	}

	opts := application.BootstrapOptions{
		Identifier:      identifier,
		Passphrase:      passphrase,
		PrimaryMnemonic: mnemonic.FromString(primaryWords),
		KeyIndex:        &keyIndex,
	}
	if len(backupXpub) > 0 {
		opts.BackupSerializedKey = backupXpub
	}
	if noStoreWords {
		store := false
		opts.StorePrimaryMnemonic = &store
	}

	result, err := svc.CreateNewWallet(context.Background(), opts)
	if err != nil {
		printErr(err)
		return nil
	}

	jsonReply, err := jsonResponse(map[string]interface{}{
		"identifier":           result.Wallet.Identifier(),
		"checksum":             result.Wallet.Checksum(),
		"key_index":            result.Wallet.KeyIndex(),
		"primary_mnemonic":     mnemonic.ToString(result.PrimaryMnemonic),
		"backup_mnemonic":      mnemonic.ToString(result.BackupMnemonic),
		"cosigner_public_keys": result.CosignerPubKeys,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	fmt.Println(jsonReply)
	return nil
}

func walletGet(cmd *cobra.Command, args []string) error {
	svc, err := getBootstrapService()
	if err != nil {
		return err
	}

	wallet, err := svc.InitWallet(context.Background(), application.BootstrapOptions{
		Identifier: identifier,
		ReadOnly:   true,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	jsonReply, err := jsonResponse(map[string]interface{}{
		"identifier":        wallet.Identifier(),
		"checksum":          wallet.Checksum(),
		"key_index":         wallet.KeyIndex(),
		"testnet":           wallet.IsTestnet(),
		"backup_public_key": wallet.BackupPubKey(),
		"cosigner_key":      wallet.CosignerPubKey(),
		"upgrade_key_index": wallet.UpgradeKeyIndex(),
	})
	if err != nil {
		printErr(err)
		return nil
	}

	fmt.Println(jsonReply)
	return nil
}

func walletUnlock(cmd *cobra.Command, args []string) error {
	svc, err := getBootstrapService()
	if err != nil {
		return err
	}

	if len(passphrase) <= 0 {
		passphrase, err = readPassphrase("wallet passphrase")
		if err != nil {
			return err
		}
	}

	wallet, err := svc.InitWallet(context.Background(), application.BootstrapOptions{
		Identifier:      identifier,
		Passphrase:      passphrase,
		PrimaryMnemonic: mnemonic.FromString(primaryWords),
	})
	if err != nil {
		printErr(err)
		return nil
	}

	fmt.Printf("wallet unlocked, checksum %s verified\n", wallet.Checksum())
	return nil
}

func walletUpgrade(cmd *cobra.Command, args []string) error {
	svc, err := getBootstrapService()
	if err != nil {
		return err
	}

	record, err := svc.UpgradeWallet(
		context.Background(), identifier, upgradeTarget,
	)
	if err != nil {
		printErr(err)
		return nil
	}

	jsonReply, err := jsonResponse(map[string]interface{}{
		"identifier":           record.Identifier,
		"key_index":            record.KeyIndex,
		"cosigner_public_keys": record.CosignerPubKeys,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	fmt.Println(jsonReply)
	return nil
}
