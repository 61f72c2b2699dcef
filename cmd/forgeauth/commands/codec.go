package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgeauth/internal/codec"
)

func codecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Convert bytes between hex, base58 and base64",
	}
	cmd.AddCommand(codecEncodeCmd(), codecDecodeCmd())
	return cmd
}

func codecEncodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "encode <hex>",
		Short: "Re-encode hex bytes as base58 or base64",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := codec.DecodeHex(args[0])
			if err != nil {
				return err
			}
			var s string
			switch format {
			case "base58":
				s = codec.EncodeBase58(b)
			case "base64":
				s = codec.EncodeBase64(b)
			case "hex":
				s = codec.EncodeHex(b)
			default:
				return fmt.Errorf("unknown format %q (want base58, base64 or hex)", format)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "base58", "output encoding: base58, base64 or hex")
	return cmd
}

func codecDecodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode <text>",
		Short: "Decode base58 or base64 text to hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			switch format {
			case "base58":
				b, err = codec.DecodeBase58(args[0])
			case "base64":
				b, err = codec.DecodeBase64(args[0])
			case "hex":
				b, err = codec.DecodeHex(args[0])
			default:
				return fmt.Errorf("unknown format %q (want base58, base64 or hex)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeHex(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "base58", "input encoding: base58, base64 or hex")
	return cmd
}
