// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reprocess re-enqueues pipeline stages for existing documents.
//
// Jobs are terminal once failed, so operators use a Reprocessor to push
// a chosen set of stages back onto the queue, optionally restricted to
// documents in a given status. Enqueueing runs in batches with
// exponential-backoff retry and progress reporting to a writer.
package reprocess
