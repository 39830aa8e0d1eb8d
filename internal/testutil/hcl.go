package testutil

// StarWarsHCL routes on a group rule: "Light Side" goes to light-side, every
// other answer to dark-side.
const StarWarsHCL = `
survey "star_wars" {
  title = "Star Wars"

  section "star-wars" {
    title = "Star Wars"

    group "choose-side" {
      title = "Choose a side"

      block "choose-your-side-block" {
        question "choose-your-side-question" {
          answer "choose-your-side-answer" {
            type = "Radio"
          }
        }
      }

      routing_rule {
        goto_group = "light-side"
        when {
          answer = "choose-your-side-answer"
          equals = "Light Side"
        }
      }
      routing_rule {
        goto_group = "dark-side"
      }
    }

    group "light-side" {
      title = "Light Side"

      block "light-side-pick-character-ship" {
        question "light-side-ship-question" {
          answer "light-side-ship-answer" {
            type = "Radio"
          }
        }
      }

      routing_rule {
        goto_group = "trivia"
      }
    }

    group "dark-side" {
      title = "Dark Side"

      block "dark-side-pick-character-ship" {
        question "dark-side-ship-question" {
          answer "dark-side-ship-answer" {
            type = "Radio"
          }
        }
      }
    }

    group "trivia" {
      title   = "Trivia"
      summary = true

      block "star-wars-trivia" {
        question "trivia-question" {
          answer "trivia-answer" {
            type = "TextField"
          }
        }
      }
    }
  }
}
`

// HouseholdHCL repeats repeating-group once per first-name answer instance.
const HouseholdHCL = `
survey "household" {
  title = "Household"

  section "household-section" {
    title = "Household"

    group "household-composition" {
      title = "Household composition"

      block "household-composition" {
        question "household-composition-question" {
          answer "first-name" {
            type = "TextField"
          }
          answer "last-name" {
            type = "TextField"
          }
        }
      }
    }

    group "repeating-group" {
      title           = "Household members"
      navigation_name = ["first-name", "last-name"]

      repeat "answer_count" {
        answer = "first-name"
      }

      block "repeating-block-1" {
        question "age-question" {
          answer "age" {
            type = "Number"
          }
        }
      }

      block "repeating-block-2" {
        question "sex-question" {
          answer "sex" {
            type = "Radio"
          }
        }
      }
    }
  }
}
`

// MetadataRoutingHCL jumps from block1 to block3 when variant flag flag_1 is set.
const MetadataRoutingHCL = `
survey "metadata_routing" {
  section "default-section" {
    group "group" {
      block "block1" {
        type = "Interstitial"

        routing_rule {
          goto_block = "block3"
          when {
            flag = "flag_1"
          }
        }
      }

      block "block2" {
        type = "Interstitial"
      }

      block "block3" {
        type = "Interstitial"
      }
    }
  }
}
`

// HouseholdListHCL loops: the household summary returns to the list
// collector while people are being added, and the confirmation group returns
// to the household group when the respondent says it is wrong.
const HouseholdListHCL = `
survey "household_list" {
  section "people" {
    title = "People"

    group "household" {
      title = "Household"

      block "list-collector" {
        type = "ListCollector"

        question "anyone-else-question" {
          answer "anyone-else" {
            type = "Radio"
          }
        }
      }

      block "household-summary" {
        routing_rule {
          goto_block = "list-collector"
          when {
            answer = "anyone-else"
            equals = "Yes"
          }
        }
      }
    }

    group "confirm-household" {
      title = "Confirm household"

      block "confirm-household" {
        question "confirm-question" {
          answer "household-correct" {
            type = "Radio"
          }
        }
      }

      routing_rule {
        goto_group = "household"
        when {
          answer = "household-correct"
          equals = "No"
        }
      }
    }
  }

  section "wrap-up" {
    title = "Wrap up"

    group "finish" {
      title   = "Finish"
      summary = true

      block "final-interstitial" {
        type = "Interstitial"
      }
    }
  }
}
`

// SkipsHCL skips the skippable group when skip-next is "Yes" and the
// skip_enabled flag is set, and skips the first block of partial, whose only
// other block is its summary, when skip-first-block is "Yes".
const SkipsHCL = `
survey "skips" {
  section "skip-section" {
    group "gate" {
      block "gate-block" {
        question "gate-question" {
          answer "skip-next" {
            type = "Radio"
          }
          answer "skip-first-block" {
            type = "Radio"
          }
        }
      }
    }

    group "skippable" {
      skip_condition {
        answer = "skip-next"
        equals = "Yes"
      }
      skip_condition {
        flag = "skip_enabled"
      }

      block "skippable-block" {
        type = "Interstitial"
      }
    }

    group "partial" {
      summary = true

      block "maybe-skipped" {
        type = "Interstitial"

        skip_condition {
          answer = "skip-first-block"
          equals = "Yes"
        }
      }
    }

    group "last" {
      block "last-block" {
        type = "Interstitial"
      }
    }
  }
}
`

// RepeatsHCL covers the answer_value and answer_count_minus_one repeat
// rules, with a framed repeating group.
const RepeatsHCL = `
survey "repeats" {
  section "people-section" {
    group "household" {
      block "household-block" {
        question "household-question" {
          answer "first-name" {
            type = "TextField"
          }
          answer "household-count" {
            type = "Number"
          }
        }
      }
    }

    group "person" {
      title        = "Person"
      introduction = true
      summary      = true

      repeat "answer_value" {
        answer = "household-count"
      }

      block "person-details" {
        question "person-question" {
          answer "person-age" {
            type = "Number"
          }
        }
      }
    }

    group "visitor" {
      repeat "answer_count_minus_one" {
        answer = "first-name"
      }

      block "visitor-details" {
        type = "Interstitial"
      }
    }
  }
}
`

// HubHCL enables the hub once the about-you section is complete. The pets
// section is skipped for respondents without pets.
const HubHCL = `
survey "hub" {
  title = "Hub"

  hub {
    enabled           = true
    required_sections = ["about-you"]
  }

  section "about-you" {
    title = "About you"

    group "about-you" {
      title = "About you"

      block "name-block" {
        question "name-question" {
          answer "name" {
            type = "TextField"
          }
          answer "has-pets" {
            type = "Radio"
          }
        }
      }

      block "about-you-summary" {
        type = "SectionSummary"
      }
    }
  }

  section "pets" {
    title = "Pets"

    group "pets" {
      title = "Pets"

      skip_condition {
        answer = "has-pets"
        equals = "No"
      }

      block "pet-block" {
        type = "Interstitial"
      }
    }
  }

  section "hobbies" {
    title = "Hobbies"

    group "hobbies" {
      title = "Hobbies"

      block "hobby-block" {
        type = "Interstitial"
      }
    }
  }
}
`
