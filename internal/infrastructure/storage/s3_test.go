package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3StoreWithClient(fake, Config{Bucket: "media", Region: "eu-west-1"})

	url, err := store.Put(context.Background(), "virtual-tryon/job 1/output.png", "image/png", []byte("png"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "https://media.s3.eu-west-1.amazonaws.com/virtual-tryon/job%201/output.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(fake.input.Bucket) != "media" || aws.ToString(fake.input.ContentType) != "image/png" {
		t.Fatalf("unexpected input %+v", fake.input)
	}
	if string(fake.body) != "png" {
		t.Fatalf("unexpected body %q", fake.body)
	}
}

func TestS3Store_PublicBaseURL(t *testing.T) {
	if got := NewS3StoreWithClient(&fakeS3{}, Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"}).URL("a/b.png"); got != "https://cdn.example.com/a/b.png" {
		t.Fatalf("unexpected cdn url %q", got)
	}
	if got := NewS3StoreWithClient(&fakeS3{}, Config{Bucket: "b", Endpoint: "http://minio:9000"}).URL("a.png"); got != "http://minio:9000/b/a.png" {
		t.Fatalf("unexpected endpoint url %q", got)
	}
}

func TestS3Store_PutError(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{err: errors.New("denied")}, Config{Bucket: "b", Region: "us-east-1"})
	if _, err := store.Put(context.Background(), "k", "image/png", nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestS3Store_BaseURLPrefixesObjectURLs(t *testing.T) {
	s := NewS3StoreWithClient(nil, Config{Bucket: "tryon", Endpoint: "http://minio:9000/"})
	if s.BaseURL() != "http://minio:9000/tryon" {
		t.Fatalf("base url = %q", s.BaseURL())
	}
	if u := s.URL("virtual-tryon/job/output.png"); u != s.BaseURL()+"/virtual-tryon/job/output.png" {
		t.Fatalf("object url %q not under base", u)
	}
}
