// Command mptzkp drives the confidential-transfer proof engine from the
// command line: key generation, ElGamal encryption, and aggregated
// range-proof creation/verification, for manual exercising of the
// engine outside of a ledger integration.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	secp256k1 "github.com/xrplf/mpt-zkp"
	"github.com/xrplf/mpt-zkp/bulletproof"
	"github.com/xrplf/mpt-zkp/elgamal"
	"github.com/xrplf/mpt-zkp/internal/log"
	"github.com/xrplf/mpt-zkp/ledger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mptzkp <keygen|encrypt|prove-range|verify-range> [flags]")
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "keygen":
		err = runKeygen(args)
	case "encrypt":
		err = runEncrypt(args)
	case "prove-range":
		err = runProveRange(args)
	case "verify-range":
		err = runVerifyRange(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Errorw(err, "command failed")
		os.Exit(1)
	}
}

func runKeygen(args []string) error {
	fs := pflag.NewFlagSet("keygen", pflag.ExitOnError)
	level := fs.String("log-level", log.LevelInfo, "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log.Init(*level)

	kp, err := elgamal.KeyGen(rand.Reader)
	if err != nil {
		return err
	}
	fmt.Printf("secret_key=%s\n", hex.EncodeToString(kp.SecretKey.Bytes()))
	fmt.Printf("public_key=%s\n", hex.EncodeToString(kp.PublicKey.CompressedBytes()))
	log.Infow("keypair generated")
	return nil
}

func runEncrypt(args []string) error {
	fs := pflag.NewFlagSet("encrypt", pflag.ExitOnError)
	pkHex := fs.String("pk", "", "recipient public key (hex, compressed)")
	amount := fs.Uint64("amount", 0, "plaintext amount")
	blindingHex := fs.String("blinding", "", "randomness (hex, 32 bytes); random if omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pkHex == "" {
		return fmt.Errorf("encrypt: --pk is required")
	}

	pk, err := decodeHex(*pkHex)
	if err != nil {
		return err
	}

	var blinding []byte
	if *blindingHex != "" {
		blinding, err = decodeHex(*blindingHex)
		if err != nil {
			return err
		}
	} else {
		s, err := secp256k1.SampleScalar(rand.Reader)
		if err != nil {
			return err
		}
		blinding = s.Bytes()
	}

	ct, err := ledger.EncryptAmount(pk, *amount, blinding)
	if err != nil {
		return err
	}
	fmt.Printf("ciphertext=%s\n", hex.EncodeToString(ct))
	fmt.Printf("blinding=%s\n", hex.EncodeToString(blinding))
	log.Infow("amount encrypted", "amount", *amount)
	return nil
}

func runProveRange(args []string) error {
	fs := pflag.NewFlagSet("prove-range", pflag.ExitOnError)
	hBaseHex := fs.String("h-base", "", "blinding base public key (hex, compressed)")
	valuesCSV := fs.String("values", "", "comma-separated uint64 values, width must be a power of two")
	contextHex := fs.String("context", "", "32-byte context hash (hex); random if omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hBaseHex == "" || *valuesCSV == "" {
		return fmt.Errorf("prove-range: --h-base and --values are required")
	}

	hBaseBytes, err := decodeHex(*hBaseHex)
	if err != nil {
		return err
	}
	hBase, err := secp256k1.NewPointFromBytes(hBaseBytes)
	if err != nil {
		return err
	}

	values, err := parseUint64CSV(*valuesCSV)
	if err != nil {
		return err
	}

	blindings := make([]*secp256k1.Scalar, len(values))
	for i := range blindings {
		blindings[i], err = secp256k1.SampleScalar(rand.Reader)
		if err != nil {
			return err
		}
	}

	context, err := contextBytes(*contextHex)
	if err != nil {
		return err
	}

	proof, commitments, err := bulletproof.Prove(rand.Reader, values, blindings, hBase, context)
	if err != nil {
		return err
	}

	fmt.Printf("context=%s\n", hex.EncodeToString(context))
	fmt.Printf("proof=%s\n", hex.EncodeToString(proof.Bytes()))
	commitHex := make([]string, len(commitments))
	for i, c := range commitments {
		commitHex[i] = hex.EncodeToString(c.CompressedBytes())
	}
	fmt.Printf("commitments=%s\n", strings.Join(commitHex, ","))
	log.Infow("range proof generated", "width", len(values), "proof_bytes", len(proof.Bytes()))
	return nil
}

func runVerifyRange(args []string) error {
	fs := pflag.NewFlagSet("verify-range", pflag.ExitOnError)
	hBaseHex := fs.String("h-base", "", "blinding base public key (hex, compressed)")
	proofHex := fs.String("proof", "", "proof bytes (hex)")
	commitmentsCSV := fs.String("commitments", "", "comma-separated commitment points (hex)")
	contextHex := fs.String("context", "", "32-byte context hash (hex)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hBaseHex == "" || *proofHex == "" || *commitmentsCSV == "" || *contextHex == "" {
		return fmt.Errorf("verify-range: --h-base, --proof, --commitments, and --context are required")
	}

	proofBytes, err := decodeHex(*proofHex)
	if err != nil {
		return err
	}
	context, err := decodeHex(*contextHex)
	if err != nil {
		return err
	}

	commitmentHexes := strings.Split(*commitmentsCSV, ",")
	commitments := make([][]byte, len(commitmentHexes))
	for i, h := range commitmentHexes {
		commitments[i], err = decodeHex(h)
		if err != nil {
			return err
		}
	}

	status := ledger.VerifyRangeAgg(proofBytes, mustDecodeHexFlag(*hBaseHex), commitments, context)
	fmt.Printf("status=%s\n", status)
	log.Infow("range proof verified", "status", status.String())
	if status != ledger.Ok {
		os.Exit(1)
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func mustDecodeHexFlag(s string) []byte {
	b, _ := decodeHex(s)
	return b
}

func parseUint64CSV(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	out := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func contextBytes(h string) ([]byte, error) {
	if h == "" {
		ctx := make([]byte, 32)
		if _, err := rand.Read(ctx); err != nil {
			return nil, err
		}
		return ctx, nil
	}
	b, err := decodeHex(h)
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("context must be 32 bytes, got %d", len(b))
	}
	return b, nil
}
