// Package hcl_adapter loads survey schemas written in HCL.
//
// A schema is a single `survey` block, optionally followed by top-level
// `section` blocks in other files which are appended in file order:
//
//	survey "star_wars" {
//	  title = "Star Wars"
//
//	  section "star-wars" {
//	    group "star-wars" {
//	      introduction = true
//
//	      block "choose-your-side-block" {
//	        question "choose-your-side-question" {
//	          answer "choose-your-side-answer" { type = "Radio" }
//	        }
//
//	        routing_rule {
//	          goto_block = "light-side-pick-character-ship"
//	          when {
//	            answer = "choose-your-side-answer"
//	            equals = "Light Side"
//	          }
//	        }
//	      }
//	    }
//	  }
//	}
//
// The decoded structs are translated into the schema package's types and
// validated there.
package hcl_adapter
