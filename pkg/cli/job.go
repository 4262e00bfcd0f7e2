// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
	"github.com/NVIDIA/nanojob/pkg/k8s/client"
	"github.com/NVIDIA/nanojob/pkg/k8s/job"
)

// newManager builds the Job manager from the global flags. Replaced in tests.
var newManager = func(cmd *cli.Command) *job.Manager {
	provider := client.NewProvider(client.WithKubeconfig(cmd.String("kubeconfig")))
	return job.NewManager(provider, job.WithDefaultNamespace(cmd.String("namespace")))
}

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "How long to wait for the job to finish",
		Value: defaults.K8sJobCompletionTimeout,
	}
}

func jobCmd() *cli.Command {
	return &cli.Command{
		Name:  "job",
		Usage: "Manage Kubernetes batch Jobs",
		Commands: []*cli.Command{
			jobCreateCmd(),
			jobGetCmd(),
			jobListCmd(),
			jobDeleteCmd(),
			jobExistsCmd(),
			jobLogsCmd(),
			jobWaitCmd(),
		},
	}
}

func jobCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a Job that runs one container to completion",
		ArgsUsage: "NAME [-- COMMAND [ARG...]]",
		Description: `Create a Job named NAME. Everything after "--" becomes the container
command; without it the image entrypoint runs.

  nanojob job create hello-nano --image busybox -- echo Hello`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Usage:    "Container image (e.g., busybox or nvcr.io/nvidia/l4t-base:r36.2.0)",
				Required: true,
			},
			&cli.StringMapFlag{
				Name:  "label",
				Usage: "Job label as key=value (repeatable, defaults to app=NAME)",
			},
			&cli.StringMapFlag{
				Name:  "node-selector",
				Usage: "Pod node selector as key=value (repeatable)",
			},
			&cli.Int32Flag{
				Name:  "backoff-limit",
				Usage: "Retries before the Job is marked failed (cluster default when unset)",
			},
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Wait for the Job to finish and print its final status",
			},
			timeoutFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("job name is required")
			}

			spec := job.Spec{
				Name:         args[0],
				Namespace:    cmd.String("namespace"),
				Image:        cmd.String("image"),
				Command:      args[1:],
				Labels:       cmd.StringMap("label"),
				NodeSelector: cmd.StringMap("node-selector"),
			}
			if cmd.IsSet("backoff-limit") {
				spec.BackoffLimit = ptr.To(cmd.Int32("backoff-limit"))
			}

			m := newManager(cmd)

			reqCtx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()
			rec, err := m.Create(reqCtx, spec)
			if err != nil {
				return err
			}

			if cmd.Bool("wait") {
				if rec, err = m.Wait(ctx, rec.Name, rec.Namespace, cmd.Duration("timeout")); err != nil {
					return err
				}
				if err := output(ctx, cmd, recordView(rec, cmd)); err != nil {
					return err
				}
				return failedErr(rec)
			}

			return output(ctx, cmd, recordView(rec, cmd))
		},
	}
}

func jobGetCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show the status of a Job",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()

			rec, err := newManager(cmd).Get(ctx, cmd.Args().First(), cmd.String("namespace"))
			if err != nil {
				return err
			}
			return output(ctx, cmd, recordView(rec, cmd))
		},
	}
}

func jobListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List Jobs in the namespace",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()

			m := newManager(cmd)
			namespace := m.Namespace(cmd.String("namespace"))
			recs, err := m.List(ctx, namespace)
			if err != nil {
				return err
			}

			if isTable(cmd) {
				return output(ctx, cmd, jobTable(recs))
			}
			return output(ctx, cmd, job.ListResponse{
				Namespace: namespace,
				Jobs:      recs,
				Total:     len(recs),
			})
		},
	}
}

func jobDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a Job and its pods",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()

			m := newManager(cmd)
			name := cmd.Args().First()
			namespace := m.Namespace(cmd.String("namespace"))
			if err := m.Delete(ctx, name, namespace); err != nil {
				return err
			}
			return output(ctx, cmd, job.DeleteResponse{
				Status:    "deleted",
				JobName:   name,
				Namespace: namespace,
			})
		},
	}
}

func jobExistsCmd() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Report whether a Job exists",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()

			m := newManager(cmd)
			name := cmd.Args().First()
			namespace := m.Namespace(cmd.String("namespace"))
			exists, err := m.Exists(ctx, name, namespace)
			if err != nil {
				return err
			}
			return output(ctx, cmd, job.ExistsResponse{
				JobName:   name,
				Namespace: namespace,
				Exists:    exists,
			})
		},
	}
}

func jobLogsCmd() *cli.Command {
	return &cli.Command{
		Name:      "logs",
		Usage:     "Print the trailing logs of a Job's pod",
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
			defer cancel()

			logs, err := newManager(cmd).Logs(ctx, cmd.Args().First(), cmd.String("namespace"))
			if err != nil {
				return err
			}

			// Raw text reads better than a flattened table.
			if isTable(cmd) {
				w := cmd.Root().Writer
				if logs.Logs == "" {
					_, err = fmt.Fprintf(w, "%s: %s\n", logs.Status, logs.Message)
					return err
				}
				_, err = fmt.Fprint(w, logs.Logs)
				return err
			}
			return output(ctx, cmd, logs)
		},
	}
}

func jobWaitCmd() *cli.Command {
	return &cli.Command{
		Name:      "wait",
		Usage:     "Wait for a Job to complete or fail",
		ArgsUsage: "NAME",
		Flags:     []cli.Flag{timeoutFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rec, err := newManager(cmd).Wait(ctx, cmd.Args().First(), cmd.String("namespace"), cmd.Duration("timeout"))
			if err != nil {
				return err
			}
			if err := output(ctx, cmd, recordView(rec, cmd)); err != nil {
				return err
			}
			return failedErr(rec)
		},
	}
}

// recordView renders a single Record as a one-row table in table format.
func recordView(rec *job.Record, cmd *cli.Command) any {
	if isTable(cmd) {
		return jobTable{*rec}
	}
	return rec
}

// failedErr turns a failed Job into a non-zero exit.
func failedErr(rec *job.Record) error {
	if rec.Failed() {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInternal,
			fmt.Sprintf("job %q failed", rec.Name),
			map[string]any{"job": rec.Name, "namespace": rec.Namespace})
	}
	return nil
}

// jobTable renders Records as rows.
type jobTable []job.Record

func (t jobTable) TableHeader() []string {
	return []string{"NAME", "NAMESPACE", "STATUS", "ACTIVE", "SUCCEEDED", "FAILED", "CREATED"}
}

func (t jobTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for i := range t {
		r := &t[i]
		rows = append(rows, []string{
			r.Name,
			r.Namespace,
			phase(r),
			fmt.Sprint(r.Status.Active),
			fmt.Sprint(r.Status.Succeeded),
			fmt.Sprint(r.Status.Failed),
			r.CreationTimestamp.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func phase(r *job.Record) string {
	switch {
	case r.Complete():
		return "Complete"
	case r.Failed():
		return "Failed"
	case r.Status.Active > 0:
		return "Running"
	default:
		return "Pending"
	}
}
