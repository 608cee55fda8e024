// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tfctl/objdiff/internal/aws"
	"github.com/tfctl/objdiff/internal/cacheutil"
	"github.com/tfctl/objdiff/internal/log"
)

// Stdin is the source name that reads a document from standard input.
const Stdin = "-"

// EnvPassphrase names the variables consulted, in order, for the passphrase
// of an encrypted document when none was given.
var EnvPassphrase = []string{"OBJDIFF_PASSPHRASE", "TF_VAR_passphrase"}

type options struct {
	format     Format
	passphrase string
	prompt     func(source string) (string, error)
	stdin      io.Reader
	s3         aws.ObjectGetter
	awsOpts    []aws.Option
	cache      *cacheutil.Cache
}

// Option configures Load.
type Option func(*options)

// WithFormat skips format detection.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithPassphrase sets the passphrase of encrypted documents.
func WithPassphrase(p string) Option {
	return func(o *options) { o.passphrase = p }
}

// WithPrompt replaces the terminal passphrase prompt. A nil prompt disables
// prompting.
func WithPrompt(fn func(source string) (string, error)) Option {
	return func(o *options) { o.prompt = fn }
}

// WithStdin replaces os.Stdin as the reader of the "-" source.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithS3Client sets the client used for s3:// sources. Without it a client is
// built from the default AWS configuration.
func WithS3Client(c aws.ObjectGetter) Option {
	return func(o *options) { o.s3 = c }
}

// WithAWS configures the S3 client built for s3:// sources.
func WithAWS(opts ...aws.Option) Option {
	return func(o *options) { o.awsOpts = append(o.awsOpts, opts...) }
}

// WithCache caches S3 objects in c. A nil cache disables caching.
func WithCache(c *cacheutil.Cache) Option {
	return func(o *options) { o.cache = c }
}

// Load reads, decrypts and parses the document at source.
func Load(ctx context.Context, source string, opts ...Option) (*Document, error) {
	o := options{prompt: Prompt, stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := read(ctx, source, &o)
	if err != nil {
		return nil, err
	}

	if IsEncrypted(raw) {
		passphrase, err := o.resolvePassphrase(source)
		if err != nil {
			return nil, err
		}
		if raw, err = Decrypt(raw, passphrase); err != nil {
			return nil, fmt.Errorf("failed to decrypt %s: %w", source, err)
		}
	}

	format := o.format
	if format == "" {
		format = Detect(source, raw)
	}

	value, err := Parse(source, format, raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: source, Format: format, Value: value, Raw: raw}
	log.Debugf("document: source=%s format=%s size=%s", source, format, doc.Size())
	return doc, nil
}

func read(ctx context.Context, source string, o *options) ([]byte, error) {
	switch {
	case source == Stdin:
		raw, err := io.ReadAll(o.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	case aws.IsURL(source):
		return o.fetch(ctx, source)
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return raw, nil
}

func (o *options) fetch(ctx context.Context, source string) ([]byte, error) {
	loc, err := aws.ParseURL(source)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if raw, ok := o.cache.Get("s3", loc.String()); ok {
			return raw, nil
		}
	}

	if o.s3 == nil {
		client, err := aws.NewS3(ctx, o.awsOpts...)
		if err != nil {
			return nil, err
		}
		o.s3 = client
	}

	raw, err := aws.Fetch(ctx, o.s3, loc)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if err := o.cache.Put("s3", loc.String(), raw); err != nil {
			log.Warnf("failed to cache %s: %v", loc, err)
		}
	}
	return raw, nil
}

// resolvePassphrase looks to the option, then the environment and finally
// the prompt.
func (o *options) resolvePassphrase(source string) (string, error) {
	if o.passphrase != "" {
		return o.passphrase, nil
	}
	for _, env := range EnvPassphrase {
		if p := os.Getenv(env); p != "" {
			return p, nil
		}
	}
	if o.prompt == nil {
		return "", fmt.Errorf("%w: %s", ErrNoPassphrase, source)
	}
	p, err := o.prompt(source)
	if err != nil {
		return "", fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}
