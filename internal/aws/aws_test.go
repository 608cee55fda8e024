// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	var o options
	for _, opt := range []Option{WithProfile("dev"), WithRegion("eu-west-1"), WithEndpoint("http://localhost:9000")} {
		opt(&o)
	}
	assert.Equal(t, options{profile: "dev", region: "eu-west-1", endpoint: "http://localhost:9000"}, o)

	assert.Empty(t, s3Options(options{}))

	fns := s3Options(o)
	require.Len(t, fns, 1)
	var so s3v2.Options
	fns[0](&so)
	assert.Equal(t, "http://localhost:9000", awsv2.ToString(so.BaseEndpoint))
	assert.True(t, so.UsePathStyle)
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		source  string
		want    Location
		wantErr bool
	}{
		{source: "s3://bucket/state/prod.tfstate", want: Location{"bucket", "state/prod.tfstate"}},
		{source: "s3://bucket/a.json", want: Location{"bucket", "a.json"}},
		{source: "s3://bucket/", wantErr: true},
		{source: "s3:///key", wantErr: true},
		{source: "https://bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := ParseURL(tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.source, got.String())
		})
	}

	assert.True(t, IsURL("s3://b/k"))
	assert.False(t, IsURL("./b/k"))
}

type fakeGetter struct {
	body  string
	err   error
	input *s3v2.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestFetch(t *testing.T) {
	g := &fakeGetter{body: `{"a":1}`}
	b, err := Fetch(context.Background(), g, Location{"bucket", "a.json"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(b))
	assert.Equal(t, "bucket", awsv2.ToString(g.input.Bucket))
	assert.Equal(t, "a.json", awsv2.ToString(g.input.Key))

	g = &fakeGetter{err: errors.New("access denied")}
	_, err = Fetch(context.Background(), g, Location{"bucket", "a.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bucket/a.json")
}
